package email

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// postmarkBadToken is the API error code for a missing or wrong server token.
const postmarkBadToken = 10

// PostmarkSender is the part of the Postmark client the transport needs.
type PostmarkSender interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkFactory builds a sender authenticated with the given server token.
type PostmarkFactory func(serverToken string) PostmarkSender

// PostmarkTransport delivers through the Postmark API. The message
// credential is used as the Postmark server token.
type PostmarkTransport struct {
	newSender PostmarkFactory
}

// NewPostmarkTransport creates a Postmark transport.
func NewPostmarkTransport(cfg Config) (*PostmarkTransport, error) {
	accountToken := cfg.PostmarkAccountToken
	return NewPostmarkTransportWithFactory(func(serverToken string) PostmarkSender {
		return postmark.NewClient(serverToken, accountToken)
	}), nil
}

// NewPostmarkTransportWithFactory creates a transport over a custom sender
// factory.
func NewPostmarkTransportWithFactory(f PostmarkFactory) *PostmarkTransport {
	return &PostmarkTransport{newSender: f}
}

// Deliver sends env as a plain-text Postmark email.
func (t *PostmarkTransport) Deliver(ctx context.Context, env Envelope) error {
	if len(env.Recipients) == 0 {
		return ErrNoRecipients
	}

	resp, err := t.newSender(env.Credential).SendEmail(ctx, postmark.Email{
		From:       env.From,
		To:         strings.Join(env.Recipients, ","),
		Subject:    env.Subject,
		TextBody:   env.Text,
		Tag:        "attendance-report",
		TrackOpens: false,
	})
	// The client reports API errors as APIError on 4xx responses and as a
	// plain error with the code left in resp on a 200.
	code, detail := resp.ErrorCode, resp.Message
	var apiErr postmark.APIError
	if errors.As(err, &apiErr) {
		code, detail = apiErr.ErrorCode, apiErr.Message
	}

	switch {
	case code == postmarkBadToken:
		return errors.Join(ErrAuthFailed, fmt.Errorf("postmark error: %d - %s", code, detail))
	case code != 0:
		refused := make(map[string]string, len(env.Recipients))
		reply := fmt.Sprintf("%d %s", code, detail)
		for _, r := range env.Recipients {
			refused[r] = reply
		}
		return errors.Join(ErrSendRejected, &RejectionReport{Refused: refused})
	case err != nil:
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
