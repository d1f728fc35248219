package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/email"
	"github.com/dmitrymomot/attendance-report/pkg/handler"
	"github.com/dmitrymomot/attendance-report/pkg/recipient"
	"github.com/dmitrymomot/attendance-report/pkg/settings"
	"github.com/dmitrymomot/attendance-report/svc/reporting"
)

type errorKind struct {
	err    error
	status int
	code   string
}

// errorKinds is checked in order; the first match wins.
var errorKinds = []errorKind{
	{attendance.ErrEmptyField, http.StatusUnprocessableEntity, "empty_field"},
	{attendance.ErrUnknownReason, http.StatusUnprocessableEntity, "unknown_reason"},
	{attendance.ErrDuplicateName, http.StatusConflict, "duplicate_name"},
	{attendance.ErrNotFound, http.StatusNotFound, "person_not_found"},

	{recipient.ErrInvalidFormat, http.StatusUnprocessableEntity, "invalid_format"},
	{recipient.ErrDuplicate, http.StatusConflict, "duplicate_recipient"},
	{recipient.ErrNotFound, http.StatusNotFound, "recipient_not_found"},

	{email.ErrInvalidSender, http.StatusUnprocessableEntity, "invalid_sender"},
	{email.ErrMissingCredential, http.StatusUnprocessableEntity, "missing_credential"},
	{email.ErrNoRecipients, http.StatusUnprocessableEntity, "no_recipients"},
	{email.ErrEmptyContent, http.StatusUnprocessableEntity, "empty_content"},
	{email.ErrAuthFailed, http.StatusUnauthorized, "auth_failed"},
	{email.ErrLoginFailed, http.StatusUnauthorized, "login_failed"},
	{email.ErrConnectionFailed, http.StatusBadGateway, "connection_failed"},
	{email.ErrSendRejected, http.StatusBadGateway, "send_rejected"},
	{email.ErrSendFailed, http.StatusBadGateway, "send_failed"},

	{settings.ErrUnreadable, http.StatusInternalServerError, "unreadable"},
	{settings.ErrWriteFailed, http.StatusInternalServerError, "write_failed"},
}

// toHTTPError maps a domain error to its status and code. The message is
// the operator-facing text.
func toHTTPError(err error) handler.HTTPError {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return handler.HTTPError{Code: k.status, Key: k.code, Message: reporting.Message(err), Err: err}
		}
	}
	return handler.HTTPError{Code: http.StatusInternalServerError, Key: "internal_error", Message: reporting.Message(err), Err: err}
}

func fail(err error) handler.Response {
	return handler.Error(toHTTPError(err))
}

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
