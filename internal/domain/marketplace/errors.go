package marketplace

import "errors"

var (
	ErrInvalidUserType = errors.New("invalid user type")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidAmount   = errors.New("invalid amount")
	// ErrAccessDenied is returned when the marketplace rejects the
	// viewer's credentials.
	ErrAccessDenied = errors.New("marketplace access denied")
)
