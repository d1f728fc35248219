package attendance

import "encoding/json"

// Snapshot groups english names by attendance state.
// Every list follows roster insertion order.
type Snapshot struct {
	All      []string
	Work     []string
	ByReason map[Reason][]string
}

// Names returns the english names holding reason r.
func (s Snapshot) Names(r Reason) []string {
	return s.ByReason[r]
}

// MarshalJSON flattens the snapshot into {"all", "work", "<reason code>"...}.
// Every reason key is present, empty lists encode as [].
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(allReasons)+2)
	out["all"] = nonNil(s.All)
	out["work"] = nonNil(s.Work)
	for _, r := range allReasons {
		out[r.Code()] = nonNil(s.ByReason[r])
	}
	return json.Marshal(out)
}

// Aggregate groups people by reason and derives the working list.
// It is a pure function of its input.
func Aggregate(people []Person) Snapshot {
	snap := Snapshot{
		All:      make([]string, 0, len(people)),
		Work:     make([]string, 0, len(people)),
		ByReason: make(map[Reason][]string, len(allReasons)),
	}
	for _, r := range allReasons {
		snap.ByReason[r] = []string{}
	}

	for _, p := range people {
		snap.All = append(snap.All, p.EnglishName)

		working := true
		for _, r := range allReasons {
			if !p.Reasons.Has(r) {
				continue
			}
			snap.ByReason[r] = append(snap.ByReason[r], p.EnglishName)
			if !r.KeepsWorking() {
				working = false
			}
		}
		if working {
			snap.Work = append(snap.Work, p.EnglishName)
		}
	}

	return snap
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
