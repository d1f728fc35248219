// Package recipient keeps the validated set of addresses the daily report is
// mailed to.
//
// Store preserves insertion order for display but has set semantics: an
// address can be added once. Addresses must fully match the office relay's
// address syntax (see ValidAddress).
//
//	store := recipient.NewStore()
//	if err := store.Add("boss@example.com"); errors.Is(err, recipient.ErrInvalidFormat) {
//	    // tell the user
//	}
//
// Store is not safe for concurrent use.
package recipient
