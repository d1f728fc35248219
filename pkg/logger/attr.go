package logger

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/attendance-report/pkg/sanitizer"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Email records a masked address under the given key.
func Email(key, address string) slog.Attr {
	return slog.String(key, sanitizer.MaskEmail(address))
}

// Recipients records masked recipient addresses and their count.
func Recipients(addresses []string) slog.Attr {
	return slog.Group("recipients",
		slog.Int("count", len(addresses)),
		slog.Any("addresses", sanitizer.MaskEmails(addresses)),
	)
}

// Person records a roster entry by its chinese name.
func Person(chineseName string) slog.Attr {
	return slog.String("person", chineseName)
}
