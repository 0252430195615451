package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "launchpad.log")
	log, err := New(path, "debug")
	require.NoError(t, err)
	log.Info("redirect")
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"redirect"`)
}

func TestNew_EmptyPathIsNop(t *testing.T) {
	log, err := New("", "info")
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "loud")
	require.Error(t, err)
}
