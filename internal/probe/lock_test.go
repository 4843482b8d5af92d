package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadLockPID(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		target  string
		wantPID int
		wantOK  bool
	}{
		{"firefox marker", "127.0.1.1:+4242", 4242, true},
		{"last plus wins", "host+name:+77", 77, true},
		{"no plus", "127.0.1.1:4242", 0, false},
		{"not a number", "127.0.1.1:+abc", 0, false},
		{"empty pid", "127.0.1.1:+", 0, false},
		{"negative pid", "127.0.1.1:+-5", 0, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := filepath.Join(dir, "lock"+string(rune('a'+i)))
			if err := os.Symlink(tt.target, link); err != nil {
				t.Fatal(err)
			}
			pid, ok := ReadLockPID(link)
			if pid != tt.wantPID || ok != tt.wantOK {
				t.Errorf("ReadLockPID() = (%d, %v), want (%d, %v)", pid, ok, tt.wantPID, tt.wantOK)
			}
		})
	}

	t.Run("missing marker", func(t *testing.T) {
		if pid, ok := ReadLockPID(filepath.Join(dir, "absent")); ok || pid != 0 {
			t.Errorf("ReadLockPID() = (%d, %v), want (0, false)", pid, ok)
		}
	})

	t.Run("regular file is not a marker", func(t *testing.T) {
		path := filepath.Join(dir, "plain")
		if err := os.WriteFile(path, []byte("+12"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, ok := ReadLockPID(path); ok {
			t.Error("regular file should not parse")
		}
	})
}
