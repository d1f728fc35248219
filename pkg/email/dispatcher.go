package email

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/logger"
	"github.com/dmitrymomot/attendance-report/pkg/recipient"
)

// DefaultFromName is the display name of the From header.
const DefaultFromName = "Attendance Report"

// SubjectPrefix starts every report subject.
const SubjectPrefix = "Attendance Report "

// paragraphBreak separates header, body and footer.
const paragraphBreak = "\r\n\r\n"

// Message is what the user asks to send.
type Message struct {
	Sender     string
	Credential string
	Recipients []string
	Header     string
	Body       string
	Footer     string
}

// Validate runs the pre-flight checks in order and returns the first failure.
func (m Message) Validate() error {
	switch {
	case !recipient.ValidAddress(m.Sender):
		return ErrInvalidSender
	case m.Credential == "":
		return ErrMissingCredential
	case len(m.Recipients) == 0:
		return ErrNoRecipients
	case m.Body == "":
		return ErrEmptyContent
	}
	return nil
}

// Text joins header, body and footer with a blank line between each.
// Empty parts are kept so the layout does not depend on what was filled in.
func (m Message) Text() string {
	return strings.Join([]string{m.Header, m.Body, m.Footer}, paragraphBreak)
}

// Envelope is a composed message ready for a transport.
type Envelope struct {
	Sender     string
	Credential string
	Recipients []string
	From       string // formatted From header value
	Subject    string
	Text       string
	Raw        []byte // full MIME message
}

// Transport delivers a composed message.
type Transport interface {
	Deliver(ctx context.Context, env Envelope) error
}

// Dispatcher validates, composes and hands messages to a Transport.
type Dispatcher struct {
	transport Transport
	fromName  string
	now       func() time.Time
	log       *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFromName sets the display name of the From header.
func WithFromName(name string) DispatcherOption {
	return func(d *Dispatcher) {
		if name != "" {
			d.fromName = name
		}
	}
}

// WithClock sets the time source used for the subject date.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		if now != nil {
			d.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// NewDispatcher creates a dispatcher over the given transport.
func NewDispatcher(t Transport, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		transport: t,
		fromName:  DefaultFromName,
		now:       time.Now,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subject returns the subject line for a report sent at t.
func Subject(t time.Time) string {
	return SubjectPrefix + attendance.FormatDate(t)
}

// Send validates msg, composes it and delivers it through the transport.
// Pre-flight failures never reach the transport.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	env, err := d.compose(msg)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	start := time.Now()
	if err := d.transport.Deliver(ctx, env); err != nil {
		d.log.WarnContext(ctx, "report email not delivered",
			logger.Component("dispatcher"),
			logger.Email("sender", msg.Sender),
			logger.Recipients(msg.Recipients),
			logger.Error(err),
		)
		return err
	}

	d.log.InfoContext(ctx, "report email delivered",
		logger.Component("dispatcher"),
		logger.Event("report_sent"),
		logger.Email("sender", msg.Sender),
		logger.Recipients(msg.Recipients),
		logger.Duration(time.Since(start)),
	)
	return nil
}

func (d *Dispatcher) compose(msg Message) (Envelope, error) {
	text := msg.Text()
	subject := Subject(d.now())

	m := gomail.NewMessage(gomail.SetCharset("UTF-8"), gomail.SetEncoding(gomail.QuotedPrintable))
	from := m.FormatAddress(msg.Sender, d.fromName)
	m.SetHeader("From", from)
	m.SetHeader("To", msg.Recipients...)
	m.SetHeader("Subject", subject)
	m.SetDateHeader("Date", d.now())
	m.SetBody("text/plain", text)

	var raw bytes.Buffer
	if _, err := m.WriteTo(&raw); err != nil {
		return Envelope{}, err
	}

	return Envelope{
		Sender:     msg.Sender,
		Credential: msg.Credential,
		Recipients: append([]string(nil), msg.Recipients...),
		From:       from,
		Subject:    subject,
		Text:       text,
		Raw:        raw.Bytes(),
	}, nil
}
