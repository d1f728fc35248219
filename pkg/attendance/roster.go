package attendance

import (
	"errors"

	"github.com/dmitrymomot/attendance-report/pkg/sanitizer"
	"github.com/dmitrymomot/attendance-report/pkg/validator"
)

// Person is a registered staff member and the reasons selected for today.
type Person struct {
	ChineseName string    `json:"chinese_name"`
	EnglishName string    `json:"english_name"`
	Reasons     ReasonSet `json:"reasons"`
}

// NamePair is the persisted part of a Person.
type NamePair struct {
	ChineseName string
	EnglishName string
}

// Roster holds people in insertion order, keyed by chinese name.
// The zero value is not usable; use NewRoster.
type Roster struct {
	people []Person
	index  map[string]int
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{index: make(map[string]int)}
}

// Add registers a person with no reasons selected.
// Names are trimmed first, so whitespace-only names are rejected as empty.
func (r *Roster) Add(chineseName, englishName string) error {
	chineseName = sanitizer.Trim(chineseName)
	englishName = sanitizer.Trim(englishName)

	if err := validator.Apply(
		validator.RequiredString("chinese_name", chineseName),
		validator.RequiredString("english_name", englishName),
	); err != nil {
		return errors.Join(ErrEmptyField, err)
	}
	if _, ok := r.index[chineseName]; ok {
		return ErrDuplicateName
	}

	r.index[chineseName] = len(r.people)
	r.people = append(r.people, Person{ChineseName: chineseName, EnglishName: englishName})
	return nil
}

// Remove deletes a person. It cannot be undone.
func (r *Roster) Remove(chineseName string) error {
	i, ok := r.index[chineseName]
	if !ok {
		return ErrNotFound
	}

	r.people = append(r.people[:i], r.people[i+1:]...)
	delete(r.index, chineseName)
	for j := i; j < len(r.people); j++ {
		r.index[r.people[j].ChineseName] = j
	}
	return nil
}

// SetReason selects or clears one reason for a person.
func (r *Roster) SetReason(chineseName string, reason Reason, selected bool) error {
	if !reason.Valid() {
		return ErrUnknownReason
	}
	i, ok := r.index[chineseName]
	if !ok {
		return ErrNotFound
	}
	r.people[i].Reasons = r.people[i].Reasons.With(reason, selected)
	return nil
}

// ClearReasons resets every person to no reasons selected.
func (r *Roster) ClearReasons() {
	for i := range r.people {
		r.people[i].Reasons = 0
	}
}

// Get returns a copy of the person with the given chinese name.
func (r *Roster) Get(chineseName string) (Person, bool) {
	i, ok := r.index[chineseName]
	if !ok {
		return Person{}, false
	}
	return r.people[i], true
}

// People returns a copy of the roster in insertion order.
func (r *Roster) People() []Person {
	out := make([]Person, len(r.people))
	copy(out, r.people)
	return out
}

// Names returns the chinese/english pairs in insertion order.
func (r *Roster) Names() []NamePair {
	out := make([]NamePair, 0, len(r.people))
	for _, p := range r.people {
		out = append(out, NamePair{ChineseName: p.ChineseName, EnglishName: p.EnglishName})
	}
	return out
}

// Len returns the number of registered people.
func (r *Roster) Len() int {
	return len(r.people)
}

// Snapshot aggregates the current roster.
func (r *Roster) Snapshot() Snapshot {
	return Aggregate(r.people)
}
