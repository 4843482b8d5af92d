// Package profile loads the browser profile registry (profiles.ini) and the
// per-profile mode configuration.
package profile

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// RegistryFile is the profile registry file name inside the browser home.
const RegistryFile = "profiles.ini"

// lockName is the runtime liveness marker inside a profile directory.
const lockName = "lock"


// Profile is a named browser profile from the registry.
type Profile struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	IsRelative bool   `yaml:"is_relative"`
}

// Dir returns the absolute profile directory.
func (p Profile) Dir(browserHome string) string {
	if p.IsRelative {
		return filepath.Join(browserHome, p.Path)
	}
	return p.Path
}

// LockPath returns the path of the profile's runtime lock marker.
func (p Profile) LockPath(browserHome string) string {
	return filepath.Join(p.Dir(browserHome), lockName)
}

// LoadRegistry reads <browserHome>/profiles.ini.
func LoadRegistry(browserHome string) ([]Profile, error) {
	return LoadRegistryFromPath(filepath.Join(browserHome, RegistryFile))
}

// LoadRegistryFromPath parses a profiles.ini file. Sections whose name starts
// with "Profile" describe profiles; keys are Name, Path and IsRelative
// ("1" means true, absent means true). Profiles keep file order. A registry
// without Profile sections yields an empty list.
func LoadRegistryFromPath(path string) ([]Profile, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("load profile registry: %w", err)
	}

	var profiles []Profile
	for _, sec := range f.Sections() {
		if !strings.HasPrefix(sec.Name(), "Profile") {
			continue
		}
		p := Profile{
			Name:       sec.Key("Name").String(),
			Path:       sec.Key("Path").String(),
			IsRelative: true,
		}
		if sec.HasKey("IsRelative") {
			p.IsRelative = sec.Key("IsRelative").String() == "1"
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
