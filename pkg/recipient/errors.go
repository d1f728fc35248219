package recipient

import "errors"

var (
	ErrInvalidFormat = errors.New("invalid email address")
	ErrDuplicate     = errors.New("email address already added")
	ErrNotFound      = errors.New("email address not found")
)
