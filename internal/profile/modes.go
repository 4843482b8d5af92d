package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ModeRecord is one entry of the mode configuration.
type ModeRecord struct {
	Name string `json:"Name" yaml:"name"`
	Mode Mode   `json:"Mode" yaml:"mode"`
}

// LoadModes reads the mode configuration at path. JSON files may contain
// comments and trailing commas; .yaml and .yml files are decoded as YAML.
// A missing file yields an empty list.
func LoadModes(path string) ([]ModeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read mode config: %w", err)
	}

	var records []ModeRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parse mode config %s: %w", path, err)
	}
	return records, nil
}

// ModeFor returns the configured mode for name. The first matching record
// wins; unknown profiles and ModeNone resolve to ModeAsIs.
func ModeFor(records []ModeRecord, name string) Mode {
	for _, r := range records {
		if r.Name == name {
			return r.Mode.Normalize()
		}
	}
	return ModeAsIs
}

// ResolveModes maps every profile name to its configured live mode.
func ResolveModes(profiles []Profile, records []ModeRecord) map[string]Mode {
	modes := make(map[string]Mode, len(profiles))
	for _, p := range profiles {
		modes[p.Name] = ModeFor(records, p.Name)
	}
	return modes
}
