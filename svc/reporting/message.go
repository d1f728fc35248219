package reporting

import (
	"errors"
	"strings"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/email"
	"github.com/dmitrymomot/attendance-report/pkg/recipient"
	"github.com/dmitrymomot/attendance-report/pkg/settings"
)

// Operator-facing messages.
const (
	MsgReportSent = "Email已送出"
	MsgSaved      = "設定已儲存"
)

// Message returns the text shown to the operator for err.
// Errors this package does not know fall back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}

	var pe *PersonError
	hasName := errors.As(err, &pe)

	switch {
	// roster
	case errors.Is(err, attendance.ErrEmptyField):
		return "必須同時輸入中文及英文名字"
	case errors.Is(err, attendance.ErrDuplicateName):
		if hasName {
			return "不能輸入重複中文名: " + pe.Name
		}
		return "不能輸入重複中文名"
	case errors.Is(err, attendance.ErrNotFound):
		if hasName {
			return "名單中沒有: " + pe.Name
		}
		return "名單中沒有此人"
	case errors.Is(err, attendance.ErrUnknownReason):
		return "未知的出席狀態"

	// recipients
	case errors.Is(err, recipient.ErrInvalidFormat):
		return "請輸入email"
	case errors.Is(err, recipient.ErrDuplicate):
		return "email重複"
	case errors.Is(err, recipient.ErrNotFound):
		return "收件人不存在"

	// dispatch, pre-flight
	case errors.Is(err, email.ErrEmptyContent):
		return "無內容，請先產生郵件"
	case errors.Is(err, email.ErrInvalidSender):
		return "寄件人Email錯誤"
	case errors.Is(err, email.ErrMissingCredential):
		return "請輸入密碼"
	case errors.Is(err, email.ErrNoRecipients):
		return "無收件人"

	// dispatch, network
	case errors.Is(err, email.ErrConnectionFailed):
		return "SMTP連線失敗，錯誤訊息：" + detail(err)
	case errors.Is(err, email.ErrAuthFailed):
		return "Email密碼錯誤"
	case errors.Is(err, email.ErrLoginFailed):
		return "Email登入失敗，錯誤訊息：" + detail(err)
	case errors.Is(err, email.ErrSendRejected):
		var report *email.RejectionReport
		if errors.As(err, &report) {
			return "Email送出失敗，錯誤狀態：" + report.Error()
		}
		return "Email送出失敗，錯誤狀態：" + detail(err)
	case errors.Is(err, email.ErrSendFailed):
		return "Email送出失敗，錯誤訊息：" + detail(err)

	// settings
	case errors.Is(err, settings.ErrUnreadable):
		return "無法載入名單，請重新輸入"
	case errors.Is(err, settings.ErrWriteFailed):
		return "無法儲存設定，錯誤訊息：" + detail(err)
	}

	return err.Error()
}

// kinds are the sentinels whose English text is left out of operator messages.
var kinds = []error{
	email.ErrConnectionFailed,
	email.ErrLoginFailed,
	email.ErrAuthFailed,
	email.ErrSendRejected,
	email.ErrSendFailed,
	settings.ErrUnreadable,
	settings.ErrWriteFailed,
	settings.ErrNotFound,
	settings.ErrAccessDenied,
	settings.ErrBackendDown,
}

func isKind(err error) bool {
	for _, k := range kinds {
		if err == k {
			return true
		}
	}
	return false
}

// detail returns the underlying cause of err on one line, without the
// sentinels it was joined or wrapped with.
func detail(err error) string {
	parts := causes(err)
	if len(parts) == 0 {
		return strings.ReplaceAll(err.Error(), "\n", "; ")
	}
	return strings.Join(parts, "; ")
}

func causes(err error) []string {
	if err == nil || isKind(err) {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, causes(e)...)
		}
		return out
	}

	msg := err.Error()
	if inner := errors.Unwrap(err); inner != nil && isKind(inner) {
		msg = strings.TrimPrefix(msg, inner.Error()+": ")
	}
	return []string{strings.ReplaceAll(msg, "\n", "; ")}
}
