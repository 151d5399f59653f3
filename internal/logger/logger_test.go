package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
}

func TestSetVerbose(t *testing.T) {
	resetLogger(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	resetLogger(t)

	tests := []struct {
		name     string
		log      func(string, ...any)
		expected string
	}{
		{"debug", Debug, "[DEBUG] step 3 paused at 12\n"},
		{"info", Info, "[INFO] step 3 paused at 12\n"},
		{"warn", Warn, "[WARN] step 3 paused at 12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(true)

			tt.log("step %d paused at %d", 3, 12)

			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	Timed("hidden")()

	assert.Empty(t, buf.String())
}

func TestSection(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Search")

	assert.Equal(t, "\n=== Search ===\n", buf.String())
}

func TestTimed(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	done := Timed("load")
	done()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[DEBUG] load took "), out)
}

func TestOpenFile(t *testing.T) {
	resetLogger(t)

	path := filepath.Join(t.TempDir(), "docgrep.log")
	f, err := OpenFile(path)
	require.NoError(t, err)

	SetVerbose(true)
	Info("written to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] written to file\n", string(data))
}

func TestOpenFile_BadPath(t *testing.T) {
	resetLogger(t)

	_, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
