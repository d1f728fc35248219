package attendance

import (
	"encoding/json"
	"fmt"
)

// Reason is one of the fixed absence categories.
// The zero value is not a valid reason.
type Reason uint8

const (
	Leave Reason = iota + 1
	MorningLeave
	AfternoonLeave
	Sick
	BusinessTrip
	RemoteWork
	NightShift
)

type reasonInfo struct {
	code  string
	label string
}

// reasonTable is indexed by Reason; slot 0 is the invalid zero value.
var reasonTable = [...]reasonInfo{
	{},
	Leave:          {code: "leave", label: "休假"},
	MorningLeave:   {code: "morning_leave", label: "上午休假"},
	AfternoonLeave: {code: "afternoon_leave", label: "下午休假"},
	Sick:           {code: "sick", label: "病假"},
	BusinessTrip:   {code: "business", label: "出差"},
	RemoteWork:     {code: "home", label: "在家工作"},
	NightShift:     {code: "night", label: "夜班"},
}

var allReasons = []Reason{Leave, MorningLeave, AfternoonLeave, Sick, BusinessTrip, RemoteWork, NightShift}

// Reasons returns every reason in report order.
func Reasons() []Reason {
	out := make([]Reason, len(allReasons))
	copy(out, allReasons)
	return out
}

// ParseReason resolves an internal reason code such as "sick".
func ParseReason(code string) (Reason, error) {
	for _, r := range allReasons {
		if reasonTable[r].code == code {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownReason, code)
}

// Valid reports whether r belongs to the enumeration.
func (r Reason) Valid() bool {
	return r >= Leave && r <= NightShift
}

// Code returns the internal code used in snapshots and APIs.
func (r Reason) Code() string {
	if !r.Valid() {
		return ""
	}
	return reasonTable[r].code
}

// Label returns the display label printed in reports.
func (r Reason) Label() string {
	if !r.Valid() {
		return ""
	}
	return reasonTable[r].label
}

// KeepsWorking reports whether holding this reason alone still counts the
// person as present for the day. Only the half-day leaves do.
func (r Reason) KeepsWorking() bool {
	return r == MorningLeave || r == AfternoonLeave
}

func (r Reason) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Reason(%d)", uint8(r))
	}
	return r.Code()
}

func (r Reason) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownReason, uint8(r))
	}
	return []byte(r.Code()), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := ParseReason(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ReasonInfo is the serializable description of a reason.
type ReasonInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Catalog lists every reason with its label, in report order.
func Catalog() []ReasonInfo {
	out := make([]ReasonInfo, 0, len(allReasons))
	for _, r := range allReasons {
		out = append(out, ReasonInfo{Code: r.Code(), Label: r.Label()})
	}
	return out
}

var _ json.Marshaler = ReasonSet(0)

// ReasonSet is a bit set of reasons.
type ReasonSet uint16

// Has reports whether r is in the set.
func (s ReasonSet) Has(r Reason) bool {
	return r.Valid() && s&(1<<r) != 0
}

// With returns the set with r added or removed.
func (s ReasonSet) With(r Reason, selected bool) ReasonSet {
	if !r.Valid() {
		return s
	}
	if selected {
		return s | 1<<r
	}
	return s &^ (1 << r)
}

// Len returns the number of reasons in the set.
func (s ReasonSet) Len() int {
	n := 0
	for _, r := range allReasons {
		if s.Has(r) {
			n++
		}
	}
	return n
}

// Reasons returns the members in report order.
func (s ReasonSet) Reasons() []Reason {
	out := make([]Reason, 0, s.Len())
	for _, r := range allReasons {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// MarshalJSON encodes the set as an array of reason codes.
func (s ReasonSet) MarshalJSON() ([]byte, error) {
	codes := make([]string, 0, s.Len())
	for _, r := range s.Reasons() {
		codes = append(codes, r.Code())
	}
	return json.Marshal(codes)
}
