package domain

import "errors"

// Sentinel errors returned by document store operations. Callers branch on
// these with errors.Is; adapters wrap them with path context.
var (
	// ErrSourceNotFound is returned by commit when the rendered source file
	// does not exist. Nothing is created in the managed directory.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrDestinationUnwritable is returned when copying into the managed
	// directory fails (permissions, disk full). No partial artifact is left
	// visible.
	ErrDestinationUnwritable = errors.New("destination not writable")

	// ErrNotFound is returned when a named document no longer exists in the
	// managed directory.
	ErrNotFound = errors.New("document not found")

	// ErrCollisionUnresolved is returned when name resolution exhausts its
	// retry budget without finding an unused name.
	ErrCollisionUnresolved = errors.New("name collision could not be resolved")
)
