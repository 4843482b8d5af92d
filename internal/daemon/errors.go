package daemon

import "errors"

// Sentinel errors for the single-instance lock.
// These can be checked using errors.Is().
var (
	// ErrAlreadyRunning is returned when another launcher holds the lock.
	ErrAlreadyRunning = errors.New("another ffl is running")

	// ErrNotLocked is returned by ReadPID when no launcher holds the lock.
	ErrNotLocked = errors.New("lock is not held")
)
