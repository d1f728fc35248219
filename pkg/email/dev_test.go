package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/email"
)

func TestDevTransport_Deliver(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	tr, err := email.NewDevTransport(dir)
	require.NoError(t, err)

	require.NoError(t, tr.Deliver(context.Background(), envelope("boss@example.com")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var emlPath, jsonPath string
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".eml"):
			emlPath = filepath.Join(dir, e.Name())
		case strings.HasSuffix(e.Name(), ".json"):
			jsonPath = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, emlPath)
	require.NotEmpty(t, jsonPath)

	raw, err := os.ReadFile(emlPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Subject: test")

	meta, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.NotContains(t, string(meta), "secret")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(meta, &decoded))
	assert.Equal(t, "Attendance Report 2026年10月16日", decoded["subject"])
}

func TestNewDevTransport_RequiresDir(t *testing.T) {
	t.Parallel()

	_, err := email.NewDevTransport("")
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
