package reporting_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/email"
	"github.com/dmitrymomot/attendance-report/pkg/recipient"
	"github.com/dmitrymomot/attendance-report/pkg/settings"
	"github.com/dmitrymomot/attendance-report/svc/reporting"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{attendance.ErrEmptyField, "必須同時輸入中文及英文名字"},
		{recipient.ErrInvalidFormat, "請輸入email"},
		{recipient.ErrDuplicate, "email重複"},
		{email.ErrEmptyContent, "無內容，請先產生郵件"},
		{email.ErrInvalidSender, "寄件人Email錯誤"},
		{email.ErrMissingCredential, "請輸入密碼"},
		{email.ErrNoRecipients, "無收件人"},
		{errors.Join(email.ErrAuthFailed, errors.New("535 bad")), "Email密碼錯誤"},
		{errors.Join(settings.ErrUnreadable, errors.New("eof")), "無法載入名單，請重新輸入"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.err), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reporting.Message(tt.err))
		})
	}
}

func TestMessage_IncludesDetail(t *testing.T) {
	t.Parallel()

	err := errors.Join(email.ErrConnectionFailed, errors.New("connection refused"))
	assert.Contains(t, reporting.Message(err), "SMTP連線失敗")
	assert.Contains(t, reporting.Message(err), "connection refused")

	err = errors.Join(email.ErrLoginFailed, errors.New("no AUTH"))
	assert.Contains(t, reporting.Message(err), "Email登入失敗")

	err = errors.Join(email.ErrSendFailed, errors.New("reset"))
	assert.Contains(t, reporting.Message(err), "Email送出失敗，錯誤訊息：")
}

func TestMessage_DetailWithoutSentinelText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "connection failed",
			err:  errors.Join(email.ErrConnectionFailed, errors.New("dial tcp: connection refused")),
			want: "SMTP連線失敗，錯誤訊息：dial tcp: connection refused",
		},
		{
			name: "login failed",
			err:  errors.Join(email.ErrLoginFailed, errors.New("550 5.7.1 Client host rejected")),
			want: "Email登入失敗，錯誤訊息：550 5.7.1 Client host rejected",
		},
		{
			name: "send failed",
			err:  errors.Join(email.ErrSendFailed, errors.New("connection reset")),
			want: "Email送出失敗，錯誤訊息：connection reset",
		},
		{
			name: "write failed through a backend",
			err:  errors.Join(settings.ErrWriteFailed, errors.Join(settings.ErrBackendDown, errors.New("disk full"))),
			want: "無法儲存設定，錯誤訊息：disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := reporting.Message(tt.err)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\n")
		})
	}
}
