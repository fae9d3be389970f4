package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useJSON(t *testing.T, buf *bytes.Buffer, level string) {
	t.Helper()
	require.NoError(t, Init(Config{Level: level, Format: "json", Output: buf}))
	t.Cleanup(func() {
		SetVerbose(false)
		_ = Init(Config{Output: os.Stderr})
	})
}

func TestSetVerbose(t *testing.T) {
	defer SetVerbose(false)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "info")
	SetVerbose(true)

	Debug("test message %s", "arg")

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"message":"test message arg"`)
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "info")

	Debug("test message")

	assert.Zero(t, buf.Len())
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "info")
	SetVerbose(true)

	Section("Enrichment")

	assert.Contains(t, buf.String(), `"section":"Enrichment"`)
}

func TestWarn_EmittedAtInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "info")

	Warn("embedding %s failed", "cultural")
	Info("done")

	out := buf.String()
	assert.Contains(t, out, `"message":"embedding cultural failed"`)
	assert.Contains(t, out, `"message":"done"`)
}

func TestInfo_SuppressedAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "error")

	Info("hidden")
	Error("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestInit_Invalid(t *testing.T) {
	assert.Error(t, Init(Config{Level: "loud"}))
	assert.Error(t, Init(Config{Format: "xml"}))
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	useJSON(t, &buf, "info")

	l := Logger("http")
	l.Info().Msg("request")

	assert.Contains(t, buf.String(), `"component":"http"`)
}
