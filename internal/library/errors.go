package library

import "errors"

var (
	// ErrProjectNotFound indicates a lookup for an unknown project id.
	ErrProjectNotFound = errors.New("library: project not found")

	// ErrLocked indicates another process holds the library lock.
	ErrLocked = errors.New("library: locked by another shoplens process")

	// ErrProjectTooLarge indicates a single project that exceeds the
	// whole asset quota on its own.
	ErrProjectTooLarge = errors.New("library: project exceeds the asset quota by itself")
)
