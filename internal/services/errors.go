package services

import "errors"

// Sentinel errors returned by the store services. Handlers translate these
// into flashes, redirects, and status codes; not-found is surfaced as
// gorm.ErrRecordNotFound from the underlying queries.
var (
	ErrDuplicateUser      = errors.New("username or email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmptyText          = errors.New("message text is required")
	ErrTextTooLong        = errors.New("message text exceeds the length limit")
)
