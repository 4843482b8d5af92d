package probe

import (
	"os"
	"strconv"
	"strings"
)

// ReadLockPID reads a profile lock marker: a symlink whose target ends with
// "+<pid>" (for example "127.0.1.1:+4242"). A missing link or an unparsable
// target yields (0, false).
func ReadLockPID(path string) (int, bool) {
	target, err := os.Readlink(path)
	if err != nil {
		return 0, false
	}
	i := strings.LastIndex(target, "+")
	if i < 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(target[i+1:])
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
