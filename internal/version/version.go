// Package version holds ffl build information. The values are injected at
// link time:
//
//	go build -ldflags "-X github.com/tessro/ffl/internal/version.Version=v0.3.0" ./cmd/ffl
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
