package table

import "errors"

var (
	// ErrConfirmationRequired is returned by a destructive action that was
	// invoked without the viewer's explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnknownAction        = errors.New("unknown action")
	ErrItemNotFound         = errors.New("item not found")
	// ErrStaleLoad marks a fetch that finished after a newer one started; its
	// result was discarded.
	ErrStaleLoad = errors.New("stale load discarded")
	ErrReadOnly  = errors.New("modal is read-only")
	ErrNoHandler = errors.New("operation not supported")
)
