package recipient

import (
	"errors"
	"slices"

	"github.com/dmitrymomot/attendance-report/pkg/sanitizer"
	"github.com/dmitrymomot/attendance-report/pkg/validator"
)

// ValidAddress reports whether address is a full match for the address syntax.
func ValidAddress(address string) bool {
	return validator.IsEmail(address)
}

// Store is an insertion-ordered set of recipient addresses.
type Store struct {
	addresses []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add validates and appends an address. Surrounding whitespace is ignored.
func (s *Store) Add(address string) error {
	address = sanitizer.Trim(address)
	if err := validator.Apply(validator.ValidEmail("address", address)); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}
	if s.Contains(address) {
		return ErrDuplicate
	}
	s.addresses = append(s.addresses, address)
	return nil
}

// Remove deletes an address.
func (s *Store) Remove(address string) error {
	i := slices.Index(s.addresses, address)
	if i < 0 {
		return ErrNotFound
	}
	s.addresses = slices.Delete(s.addresses, i, i+1)
	return nil
}

// Contains reports whether the exact address is present.
func (s *Store) Contains(address string) bool {
	return slices.Contains(s.addresses, address)
}

// List returns a copy of the addresses in insertion order.
func (s *Store) List() []string {
	return slices.Clone(s.addresses)
}

// Len returns the number of addresses.
func (s *Store) Len() int {
	return len(s.addresses)
}
