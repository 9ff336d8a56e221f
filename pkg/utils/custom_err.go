package utils

import "errors"

var (
	ErrInvalidInput              = errors.New("invalid input")
	ErrTripExtractionFailed      = errors.New("trip extraction failed")
	ErrSearchProviderUnavailable = errors.New("search provider unavailable")
	ErrCacheUnavailable          = errors.New("cache unavailable")
	ErrDatabaseError             = errors.New("database error")
)
