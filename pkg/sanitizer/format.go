package sanitizer

import (
	"regexp"
	"strings"
)

var unsafeFilenameRegex = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// MaskEmail keeps the first character of the local part and the full domain,
// so log lines stay recognizable without carrying the whole address.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return email
	}

	if len(local) == 1 {
		return "*@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

// MaskEmails applies MaskEmail to every address.
func MaskEmails(emails []string) []string {
	out := make([]string, len(emails))
	for i, e := range emails {
		out[i] = MaskEmail(e)
	}
	return out
}

// SanitizeFilename replaces characters that are unsafe on common filesystems
// and enforces the 255-byte limit.
func SanitizeFilename(filename string) string {
	safe := unsafeFilenameRegex.ReplaceAllString(filename, "_")
	safe = strings.ReplaceAll(safe, " ", "_")
	safe = strings.Trim(safe, "_.")

	if len(safe) > 255 {
		safe = safe[:255]
	}
	if safe == "" {
		safe = "file"
	}
	return safe
}
