package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseDir(t *testing.T) {
	t.Run("default uses home directory", func(t *testing.T) {
		t.Setenv(EnvFflDir, "")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".ffl")
		if dir != expected {
			t.Errorf("BaseDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("FFL_DIR overrides default", func(t *testing.T) {
		t.Setenv(EnvFflDir, "/tmp/ffl-test")

		dir, err := BaseDir()
		if err != nil {
			t.Fatalf("BaseDir() error = %v", err)
		}
		if dir != "/tmp/ffl-test" {
			t.Errorf("BaseDir() = %q, want %q", dir, "/tmp/ffl-test")
		}
	})
}

func TestConfigDir(t *testing.T) {
	t.Run("default uses home config directory", func(t *testing.T) {
		t.Setenv(EnvFflDir, "")
		t.Setenv("XDG_CONFIG_HOME", "")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "ffl")
		if dir != expected {
			t.Errorf("ConfigDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("XDG_CONFIG_HOME is honored", func(t *testing.T) {
		t.Setenv(EnvFflDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != "/tmp/xdg/ffl" {
			t.Errorf("ConfigDir() = %q, want %q", dir, "/tmp/xdg/ffl")
		}
	})

	t.Run("FFL_DIR overrides to FFL_DIR/config", func(t *testing.T) {
		t.Setenv(EnvFflDir, "/tmp/ffl-test")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}
		if dir != "/tmp/ffl-test/config" {
			t.Errorf("ConfigDir() = %q, want %q", dir, "/tmp/ffl-test/config")
		}
	})
}

func TestConfigFiles(t *testing.T) {
	t.Setenv(EnvFflDir, "/tmp/ffl-test")

	settings, err := SettingsPath()
	if err != nil {
		t.Fatalf("SettingsPath() error = %v", err)
	}
	if settings != "/tmp/ffl-test/config/config.toml" {
		t.Errorf("SettingsPath() = %q", settings)
	}

	modes, err := ModesPath()
	if err != nil {
		t.Fatalf("ModesPath() error = %v", err)
	}
	if modes != "/tmp/ffl-test/config/config.json" {
		t.Errorf("ModesPath() = %q", modes)
	}

	history, err := HistoryPath()
	if err != nil {
		t.Fatalf("HistoryPath() error = %v", err)
	}
	if history != "/tmp/ffl-test/history" {
		t.Errorf("HistoryPath() = %q", history)
	}
}

func TestLockPath(t *testing.T) {
	tests := []struct {
		name    string
		lock    string
		fflDir  string
		runtime string
		want    string
	}{
		{"explicit override wins", "/tmp/custom.lock", "/tmp/ffl-test", "/run/user/1000", "/tmp/custom.lock"},
		{"FFL_DIR beats runtime dir", "", "/tmp/ffl-test", "/run/user/1000", "/tmp/ffl-test/ffl.lock"},
		{"runtime dir", "", "", "/run/user/1000", "/run/user/1000/ffl/lock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvLockPath, tt.lock)
			t.Setenv(EnvFflDir, tt.fflDir)
			t.Setenv("XDG_RUNTIME_DIR", tt.runtime)

			if got := LockPath(); got != tt.want {
				t.Errorf("LockPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrowserHome(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(EnvBrowserHome, "")
		dir, err := BrowserHome()
		if err != nil {
			t.Fatalf("BrowserHome() error = %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".mozilla", "firefox"); dir != want {
			t.Errorf("BrowserHome() = %q, want %q", dir, want)
		}
	})

	t.Run("override", func(t *testing.T) {
		t.Setenv(EnvBrowserHome, "/tmp/firefox")
		dir, err := BrowserHome()
		if err != nil {
			t.Fatalf("BrowserHome() error = %v", err)
		}
		if dir != "/tmp/firefox" {
			t.Errorf("BrowserHome() = %q, want %q", dir, "/tmp/firefox")
		}
	})
}
