package email_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mrz1836/postmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/email"
)

// postmarkAPI answers POST /email with a fixed status and body and records
// what it received.
type postmarkAPI struct {
	status int
	body   string

	mu     sync.Mutex
	tokens []string
	emails []postmark.Email
}

func (a *postmarkAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var e postmark.Email
	_ = json.NewDecoder(r.Body).Decode(&e)

	a.mu.Lock()
	a.tokens = append(a.tokens, r.Header.Get("X-Postmark-Server-Token"))
	a.emails = append(a.emails, e)
	a.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(a.status)
	_, _ = w.Write([]byte(a.body))
}

func (a *postmarkAPI) received() ([]string, []postmark.Email) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.tokens...), append([]postmark.Email(nil), a.emails...)
}

func newPostmarkTransport(t *testing.T, api *postmarkAPI) *email.PostmarkTransport {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	return email.NewPostmarkTransportWithFactory(func(token string) email.PostmarkSender {
		client := postmark.NewClient(token, "")
		client.BaseURL = srv.URL
		return client
	})
}

func TestPostmarkTransport_Deliver(t *testing.T) {
	t.Parallel()

	t.Run("sends plain text with credential as token", func(t *testing.T) {
		t.Parallel()

		api := &postmarkAPI{status: http.StatusOK, body: `{"To":"boss@example.com","MessageID":"abc","ErrorCode":0,"Message":"OK"}`}
		tr := newPostmarkTransport(t, api)

		require.NoError(t, tr.Deliver(context.Background(), envelope("boss@example.com", "hr@example.com")))

		tokens, emails := api.received()
		require.Len(t, emails, 1)
		assert.Equal(t, []string{"secret"}, tokens)
		assert.Equal(t, "boss@example.com,hr@example.com", emails[0].To)
		assert.Equal(t, "body", emails[0].TextBody)
		assert.Empty(t, emails[0].HTMLBody)
		assert.Equal(t, "Attendance Report 2026年10月16日", emails[0].Subject)
	})

	tests := []struct {
		name     string
		status   int
		body     string
		want     error
		refusals bool
	}{
		{
			name:   "bad token is an auth failure",
			status: http.StatusUnauthorized,
			body:   `{"ErrorCode":10,"Message":"Bad or missing API token"}`,
			want:   email.ErrAuthFailed,
		},
		{
			name:     "api rejection lists recipients",
			status:   http.StatusUnprocessableEntity,
			body:     `{"ErrorCode":406,"Message":"Inactive recipient"}`,
			want:     email.ErrSendRejected,
			refusals: true,
		},
		{
			name:     "error code on a 200 response is a rejection",
			status:   http.StatusOK,
			body:     `{"ErrorCode":406,"Message":"Inactive recipient"}`,
			want:     email.ErrSendRejected,
			refusals: true,
		},
		{
			name:   "server error without api body is a send failure",
			status: http.StatusInternalServerError,
			body:   `not json`,
			want:   email.ErrSendFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := newPostmarkTransport(t, &postmarkAPI{status: tt.status, body: tt.body})
			err := tr.Deliver(context.Background(), envelope("boss@example.com"))
			require.ErrorIs(t, err, tt.want)

			var report *email.RejectionReport
			if tt.refusals {
				require.True(t, errors.As(err, &report))
				assert.Equal(t, "406 Inactive recipient", report.Refused["boss@example.com"])
			} else {
				assert.False(t, errors.As(err, &report))
			}
		})
	}

	t.Run("unreachable api is a send failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		tr := email.NewPostmarkTransportWithFactory(func(token string) email.PostmarkSender {
			client := postmark.NewClient(token, "")
			client.BaseURL = url
			return client
		})
		err := tr.Deliver(context.Background(), envelope("boss@example.com"))
		assert.ErrorIs(t, err, email.ErrSendFailed)
		assert.NotErrorIs(t, err, email.ErrAuthFailed)
	})

	t.Run("no recipients", func(t *testing.T) {
		t.Parallel()

		api := &postmarkAPI{status: http.StatusOK, body: `{}`}
		err := newPostmarkTransport(t, api).Deliver(context.Background(), envelope())
		assert.ErrorIs(t, err, email.ErrNoRecipients)
		_, emails := api.received()
		assert.Empty(t, emails)
	})
}
