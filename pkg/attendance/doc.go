// Package attendance holds the daily roster of staff members, the fixed set
// of absence reasons they can be flagged with, and the pure functions that
// turn a roster into grouped attendance data and a printable report.
//
// # Reasons
//
// Reasons form a closed, ordered enumeration. The order is significant: it
// drives both the grouping produced by Aggregate and the line order of
// FormatReport.
//
//	for _, r := range attendance.Reasons() {
//	    fmt.Println(r.Code(), r.Label())
//	}
//
// # Roster
//
// Roster keeps people in insertion order, keyed by their Chinese name.
// It is not safe for concurrent use; callers that share a Roster between
// goroutines must serialize access themselves.
//
//	roster := attendance.NewRoster()
//	_ = roster.Add("張三", "Zhang")
//	_ = roster.Add("李四", "Li")
//	_ = roster.SetReason("張三", attendance.Sick, true)
//
//	report := attendance.FormatReport(roster.Snapshot(), time.Now())
//	// 2026年10月16日\r\n病假：Zhang\r\n同仁共2名：1名病假，上班同仁1名
//
// # Work policy
//
// A person counts as working unless they hold at least one reason outside
// the half-day set (MorningLeave, AfternoonLeave). Holding both half-day
// reasons still counts as working.
//
// # Error Handling
//
// Roster operations return sentinel errors that can be checked with
// errors.Is: ErrEmptyField, ErrDuplicateName, ErrNotFound and
// ErrUnknownReason. A rejected operation leaves the roster unchanged.
package attendance
