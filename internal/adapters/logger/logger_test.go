package logger_test

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/turret/internal/adapters/logger"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/zerr"
)

// captureStderr captures output written to os.Stderr during the execution of fn.
func captureStderr(fn func()) (string, error) {
	originalStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stderr = w

	done := make(chan string, 1)
	go func() {
		buf, _ := io.ReadAll(r)
		done <- string(buf)
	}()

	fn()

	if err := w.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	output := <-done
	if err := r.Close(); err != nil {
		os.Stderr = originalStderr
		return "", err
	}
	os.Stderr = originalStderr

	return output, nil
}

func TestLogger_WritesToStderr(t *testing.T) {
	output, err := captureStderr(func() {
		// Create the logger inside the capture function so it uses the redirected stderr
		lg := logger.New()
		lg.Info("resolver cache holds 3 queries")
	})
	require.NoError(t, err)

	assert.Contains(t, output, "resolver cache holds 3 queries")
	assert.Contains(t, output, "INFO")
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Debug("hidden")
	lg.Info("info line")
	lg.Warn("warn line")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "info line")
	assert.Contains(t, out, "WARN")

	buf.Reset()
	lg.SetLevel(slog.LevelDebug)
	lg.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	lg.SetEnabled(false)

	lg.Info("quiet")
	lg.Error(os.ErrPermission)

	assert.Empty(t, buf.String())
}

func TestLogger_ErrorChain(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Error(zerr.Wrap(os.ErrPermission, "snapshot save failed"))
	lg.Error(nil)

	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "snapshot save failed")
	assert.Contains(t, out, "permission denied")
	assert.Equal(t, 1, strings.Count(out, "level=ERROR"))
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)
	lg.SetJSON(true)

	lg.Error(os.ErrNotExist)

	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "file does not exist")
}

func TestNewFromSettings(t *testing.T) {
	s := domain.DefaultSettings()
	s.LogLevel = "error"

	var buf bytes.Buffer
	lg := logger.NewFromSettings(s)
	lg.SetOutput(&buf)
	lg.Warn("dropped")
	assert.Empty(t, buf.String())

	s.LogLevel = "debug"
	s.LogEnabled = false
	lg = logger.NewFromSettings(s)
	lg.SetOutput(&buf)
	lg.Error(os.ErrClosed)
	assert.Empty(t, buf.String())
}

func TestNewFromSettings_JSONFormat(t *testing.T) {
	s := domain.DefaultSettings()
	s.LogFormat = "JSON"

	var buf bytes.Buffer
	lg := logger.NewFromSettings(s)
	lg.SetOutput(&buf)
	lg.Info("cache cleared")

	assert.Contains(t, buf.String(), `"msg":"cache cleared"`)
	assert.Contains(t, buf.String(), `"component":"turret"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("chatty"))
}
