// Package sanitizer normalizes user input and prepares values for safe
// display, logging and storage.
//
// Functions are pure and safe for concurrent use:
//
//	name := sanitizer.Trim(input)             // "  Zhang " -> "Zhang"
//	log.Info("sent", "to", sanitizer.MaskEmail(addr)) // "a****@example.com"
//	fname := sanitizer.SanitizeFilename(subject)
package sanitizer
