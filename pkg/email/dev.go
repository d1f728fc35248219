package email

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/attendance-report/pkg/sanitizer"
)

// DevTransport writes every message to a directory instead of sending it.
// Each delivery produces a .eml file and a .json file with its metadata.
type DevTransport struct {
	dir string
	now func() time.Time
}

// devMetadata never contains the credential.
type devMetadata struct {
	From       string    `json:"from"`
	Sender     string    `json:"sender"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDevTransport creates the output directory if needed.
func NewDevTransport(dir string) (*DevTransport, error) {
	if dir == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("dev output directory is required"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return &DevTransport{dir: dir, now: time.Now}, nil
}

// Deliver writes env to disk. The file names start with a timestamp.
func (t *DevTransport) Deliver(_ context.Context, env Envelope) error {
	if len(env.Recipients) == 0 {
		return ErrNoRecipients
	}

	now := t.now()
	base := now.Format("20060102_150405.000000000") + "_" + sanitizer.SanitizeFilename(env.Subject)

	if err := os.WriteFile(filepath.Join(t.dir, base+".eml"), env.Raw, 0o644); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	meta, err := json.MarshalIndent(devMetadata{
		From:       env.From,
		Sender:     env.Sender,
		Recipients: env.Recipients,
		Subject:    env.Subject,
		Text:       env.Text,
		CreatedAt:  now,
	}, "", "  ")
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(t.dir, base+".json"), meta, 0o644); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
