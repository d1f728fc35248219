package attendance

import "errors"

var (
	// ErrEmptyField is returned when either name of a person is empty.
	ErrEmptyField = errors.New("both chinese and english names are required")
	// ErrDuplicateName is returned when the chinese name is already on the roster.
	ErrDuplicateName = errors.New("person with this chinese name already exists")
	// ErrNotFound is returned when no person has the given chinese name.
	ErrNotFound = errors.New("person not found")
	// ErrUnknownReason is returned for a reason outside the fixed enumeration.
	ErrUnknownReason = errors.New("unknown absence reason")
)
