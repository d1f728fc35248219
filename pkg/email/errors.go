package email

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("invalid email configuration")

	// Pre-flight validation.
	ErrInvalidSender     = errors.New("sender is not a valid email address")
	ErrMissingCredential = errors.New("credential is required")
	ErrNoRecipients      = errors.New("no recipients")
	ErrEmptyContent      = errors.New("report body is empty")

	// Delivery stages.
	ErrConnectionFailed = errors.New("failed to connect to mail relay")
	ErrLoginFailed      = errors.New("failed to log in to mail relay")
	ErrAuthFailed       = errors.New("mail relay rejected the credentials")
	ErrSendRejected     = errors.New("mail relay refused some recipients")
	ErrSendFailed       = errors.New("failed to send email")
)

// RejectionReport lists the recipients the relay refused, with its reply.
type RejectionReport struct {
	Refused map[string]string
}

func (r *RejectionReport) Error() string {
	addrs := make([]string, 0, len(r.Refused))
	for addr := range r.Refused {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)

	parts := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		parts = append(parts, fmt.Sprintf("%s: %s", addr, r.Refused[addr]))
	}
	return "refused recipients: " + strings.Join(parts, "; ")
}
