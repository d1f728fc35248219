package settings

import "errors"

var (
	ErrUnreadable    = errors.New("settings document is unreadable")
	ErrWriteFailed   = errors.New("failed to write settings document")
	ErrInvalidConfig = errors.New("invalid settings configuration")

	// Storage level.
	ErrNotFound     = errors.New("settings document not found")
	ErrAccessDenied = errors.New("access to settings storage denied")
	ErrBackendDown  = errors.New("settings storage unavailable")
)
