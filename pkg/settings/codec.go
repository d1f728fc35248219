package settings

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a wire format of the settings document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, s)
	}
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes doc. JSON is indented with four spaces.
func Encode(doc Document, format Format) ([]byte, error) {
	wire := toWire(doc)

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(wire); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		if err := enc.Encode(wire); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}
}

// Decode parses data into a Document. Any failure, including a credential
// that is not valid base64, is ErrUnreadable.
func Decode(data []byte, format Format) (Document, error) {
	var wire wireDocument

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &wire); err != nil {
			return Document{}, errors.Join(ErrUnreadable, err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &wire); err != nil {
			return Document{}, errors.Join(ErrUnreadable, err)
		}
	default:
		return Document{}, fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, format)
	}

	credential, err := base64.StdEncoding.DecodeString(wire.PasswordEncoded)
	if err != nil {
		return Document{}, errors.Join(ErrUnreadable, fmt.Errorf("password_encoded: %w", err))
	}

	doc := Document{
		Names:      wire.Names,
		Sender:     wire.Sender,
		Credential: string(credential),
		Recipients: []string(wire.Recipients),
		Header:     wire.Header,
		Footer:     wire.Footer,
	}
	if doc.Names == nil {
		doc.Names = Names{}
	}
	if doc.Recipients == nil {
		doc.Recipients = []string{}
	}
	return doc, nil
}

func toWire(doc Document) wireDocument {
	names := doc.Names
	if names == nil {
		names = Names{}
	}
	recipients := recipientList(doc.Recipients)
	if recipients == nil {
		recipients = recipientList{}
	}
	return wireDocument{
		Names:           names,
		Sender:          doc.Sender,
		PasswordEncoded: base64.StdEncoding.EncodeToString([]byte(doc.Credential)),
		Recipients:      recipients,
		Header:          doc.Header,
		Footer:          doc.Footer,
	}
}

// Codec loads and saves the document through a Storage.
type Codec struct {
	storage Storage
	format  Format
}

// NewCodec creates a codec. An empty format means JSON.
func NewCodec(storage Storage, format Format) *Codec {
	if format == "" {
		format = FormatJSON
	}
	return &Codec{storage: storage, format: format}
}

// Format returns the wire format in use.
func (c *Codec) Format() Format {
	return c.format
}

// Load reads and decodes the document.
func (c *Codec) Load(ctx context.Context) (Document, error) {
	data, err := c.storage.Read(ctx)
	if err != nil {
		return Document{}, errors.Join(ErrUnreadable, err)
	}
	return Decode(data, c.format)
}

// Save encodes and writes the document.
func (c *Codec) Save(ctx context.Context, doc Document) error {
	data, err := Encode(doc, c.format)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	if err := c.storage.Write(ctx, data); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// Close releases the storage if it holds a connection.
func (c *Codec) Close() error {
	if closer, ok := c.storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
