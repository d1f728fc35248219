// Package reporting is the attendance tool's application service. It owns
// the roster, the recipient list, the sender profile and the current report
// text, and wires them to settings persistence and email dispatch.
//
// All methods are safe for concurrent use; they are serialized by a single
// mutex, so at most one mutation or dispatch is in flight.
//
// Message turns any error returned here into the text shown to the operator.
package reporting
