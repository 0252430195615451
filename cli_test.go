package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad/internal/clients"
	"launchpad/internal/state"
	"launchpad/internal/workflow"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStatus_FreshSession(t *testing.T) {
	db := filepath.Join(t.TempDir(), "wizard.db")
	out, err := execute(t, "status", "--db-path", db, "--session", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "launchpad session s1")
	assert.Contains(t, out, "nothing saved yet")
	assert.Contains(t, out, "Overview")
	assert.Contains(t, out, "current")
}

func TestReset_MemoryBackend(t *testing.T) {
	out, err := execute(t, "reset", "--storage", "memory", "--session", "s2")
	require.NoError(t, err)
	assert.Contains(t, out, "session s2 reset")
}

func TestUnknownStorageIsRejected(t *testing.T) {
	_, err := execute(t, "status", "--storage", "floppy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floppy")
}

func TestRenderStatus_MarksStages(t *testing.T) {
	st := state.State{
		Workflow: workflow.StepUploadValidatorFile,
		Clients:  clients.Selection{Execution: clients.Geth, Consensus: clients.Prysm},
	}
	out := renderStatus("abc", st, true)
	assert.Contains(t, out, "launchpad session abc")
	assert.NotContains(t, out, "nothing saved yet")
	assert.Contains(t, out, "Geth")
	assert.Contains(t, out, "Prysm")
	assert.Equal(t, 3, strings.Count(out, "done"))
	assert.Equal(t, 1, strings.Count(out, "current"))
	assert.Equal(t, 4, strings.Count(out, "locked"))
}
