package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/config"
)

func TestAbsenceFlag(t *testing.T) {
	t.Parallel()

	var f absenceFlag
	require.NoError(t, f.Set("張三=sick"))
	require.NoError(t, f.Set(" 李四 = night "))
	assert.Equal(t, absenceFlag{
		{name: "張三", reason: attendance.Sick},
		{name: "李四", reason: attendance.NightShift},
	}, f)
	assert.Equal(t, "張三=sick,李四=night", f.String())

	assert.Error(t, f.Set("張三"))
	assert.Error(t, f.Set("=sick"))
	assert.ErrorIs(t, f.Set("張三=vacation"), attendance.ErrUnknownReason)
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: attendance-report")

	stderr.Reset()
	assert.Error(t, run(context.Background(), []string{"bogus"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "commands:")
}

func TestRun_Report(t *testing.T) {
	dir := t.TempDir()
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{
    "names": {"張三": "Zhang", "李四": "Li"},
    "sender": "clerk@example.com",
    "password_encoded": "c2VjcmV0",
    "recipients": ["boss@example.com"],
    "header": "Hi",
    "footer": "Bye"
}`), 0o600))

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"SETTINGS_BACKEND=file\nSETTINGS_PATH="+settingsPath+"\nEMAIL_TRANSPORT=dev\nEMAIL_DEV_DIR="+filepath.Join(dir, "out")+"\nAPP_ENV=production\n",
	), 0o600))
	t.Cleanup(config.ResetCache)
	for _, key := range []string{"SETTINGS_BACKEND", "SETTINGS_PATH", "EMAIL_TRANSPORT", "EMAIL_DEV_DIR", "APP_ENV"} {
		t.Setenv(key, "")
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-env-file", envFile, "send", "-absent", "張三=sick"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "病假：Zhang")
	assert.Contains(t, stdout.String(), "同仁共2名：1名病假，上班同仁1名")
	assert.Contains(t, stderr.String(), "Email已送出")

	written, err := filepath.Glob(filepath.Join(dir, "out", "*.eml"))
	require.NoError(t, err)
	assert.Len(t, written, 1)

	stdout.Reset()
	err = run(context.Background(), []string{"report", "-absent", "nobody=sick"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Equal(t, "名單中沒有: nobody", err.Error())
}
