package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("FFL_DIR", t.TempDir())

	s, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if s.Browser.Command != DefaultBrowserCommand {
		t.Errorf("Browser.Command = %q, want %q", s.Browser.Command, DefaultBrowserCommand)
	}
	if s.Browser.BinarySuffix != DefaultBinarySuffix {
		t.Errorf("Browser.BinarySuffix = %q, want %q", s.Browser.BinarySuffix, DefaultBinarySuffix)
	}
	if s.Lifecycle.ShutdownGrace != DefaultShutdownGrace {
		t.Errorf("Lifecycle.ShutdownGrace = %v, want %v", s.Lifecycle.ShutdownGrace, DefaultShutdownGrace)
	}
	if !strings.HasSuffix(s.Modes.Path, filepath.Join("config", "config.json")) {
		t.Errorf("Modes.Path = %q", s.Modes.Path)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[browser]
command = "/opt/firefox/firefox"
home = "/srv/profiles"

[modes]
watch = true

[lifecycle]
shutdown_grace = "30s"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if s.Browser.Command != "/opt/firefox/firefox" {
		t.Errorf("Browser.Command = %q", s.Browser.Command)
	}
	if s.Browser.BinarySuffix != DefaultBinarySuffix {
		t.Errorf("unset key should keep default, got %q", s.Browser.BinarySuffix)
	}
	if s.Browser.Home != "/srv/profiles" {
		t.Errorf("Browser.Home = %q", s.Browser.Home)
	}
	if !s.Modes.Watch {
		t.Error("Modes.Watch should be true")
	}
	if s.Lifecycle.ShutdownGrace != 30*time.Second {
		t.Errorf("ShutdownGrace = %v", s.Lifecycle.ShutdownGrace)
	}
	if s.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", s.Log.Level)
	}
}

func TestLoadFromPath_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFL_LOG_LEVEL", "error")
	t.Setenv("FFL_BROWSER_COMMAND", "firefox-esr")
	t.Setenv("FFL_LIFECYCLE_SHUTDOWN_GRACE", "2s")

	s, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if s.Log.Level != "error" {
		t.Errorf("Log.Level = %q, want env override", s.Log.Level)
	}
	if s.Browser.Command != "firefox-esr" {
		t.Errorf("Browser.Command = %q, want env override", s.Browser.Command)
	}
	if s.Lifecycle.ShutdownGrace != 2*time.Second {
		t.Errorf("ShutdownGrace = %v, want 2s", s.Lifecycle.ShutdownGrace)
	}
}

func TestLoadFromPath_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[browser\ncommand = "), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestWriteTOML_RoundTrip(t *testing.T) {
	s := validSettings()
	s.Modes.Path = "/tmp/modes.json"

	var buf bytes.Buffer
	if err := s.WriteTOML(&buf); err != nil {
		t.Fatalf("WriteTOML: %v", err)
	}

	var got Settings
	if _, err := toml.Decode(buf.String(), &got); err != nil {
		t.Fatalf("decode written TOML: %v\n%s", err, buf.String())
	}
	if got.Browser != s.Browser || got.Modes != s.Modes {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, *s)
	}
}

func TestLoadFromPath_IgnoresUnprefixedEnv(t *testing.T) {
	t.Setenv("FFL_DIR", t.TempDir())
	t.Setenv("COMMAND", "bogus")
	t.Setenv("LEVEL", "trace")
	t.Setenv("ADDR", "nowhere")

	s, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if s.Browser.Command != DefaultBrowserCommand || s.Log.Level != DefaultLogLevel || s.Metrics.Addr != "" {
		t.Errorf("unprefixed variables leaked into settings: %+v", s)
	}
	if s.Browser.Home == os.Getenv("HOME") {
		t.Errorf("Browser.Home picked up $HOME: %q", s.Browser.Home)
	}
}
