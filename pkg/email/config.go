package email

import (
	"errors"
	"fmt"
	"time"
)

// Transport names accepted by EMAIL_TRANSPORT.
const (
	TransportSMTP     = "smtp"
	TransportPostmark = "postmark"
	TransportDev      = "dev"
)

// Config holds email delivery configuration.
// The sender address and credential are not part of it: they are entered by
// the user and travel with each Message.
type Config struct {
	Transport string `env:"EMAIL_TRANSPORT" envDefault:"smtp"`
	FromName  string `env:"EMAIL_FROM_NAME" envDefault:"Attendance Report"`

	SMTPHost      string        `env:"SMTP_HOST" envDefault:"localhost"`
	SMTPPort      int           `env:"SMTP_PORT" envDefault:"25"`
	SMTPTimeout   time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
	SMTPStartTLS  bool          `env:"SMTP_STARTTLS" envDefault:"false"`
	SMTPLocalName string        `env:"SMTP_LOCAL_NAME" envDefault:"localhost"`

	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`

	DevDir string `env:"EMAIL_DEV_DIR" envDefault:"./email-output"`
}

// NewTransport builds the transport selected by cfg.Transport.
func NewTransport(cfg Config) (Transport, error) {
	switch cfg.Transport {
	case TransportSMTP, "":
		return NewSMTPTransport(cfg)
	case TransportPostmark:
		return NewPostmarkTransport(cfg)
	case TransportDev:
		return NewDevTransport(cfg.DevDir)
	default:
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("unknown transport %q", cfg.Transport))
	}
}
