package repositories

import "errors"

// Sentinel errors shared by the repository implementations. Handlers match
// on these instead of driver-specific errors.
var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("document already exists")
)
