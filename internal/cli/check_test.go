package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/internal/layerdoc"
)

func TestCheckValidDocument(t *testing.T) {
	out, err := runCommand(t, "check", filepath.Join("testdata", "site.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ document valid (2 layers)")
}

func TestCheckValidDocumentJSON(t *testing.T) {
	out, err := runCommand(t, "--format", "json", "check", filepath.Join("testdata", "site.yaml"))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, float64(2), data["layers"])
}

func TestCheckCollectsAllViolations(t *testing.T) {
	out, err := runCommand(t, "check", filepath.Join("testdata", "broken.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ document invalid")
	assert.Contains(t, out, layerdoc.CodeEmptyName)
	assert.Contains(t, out, layerdoc.CodeDuplicate)
	assert.Contains(t, out, layerdoc.CodeUnknownParent)
}

func TestCheckDetectsCycle(t *testing.T) {
	out, err := runCommand(t, "check", filepath.Join("testdata", "cycle.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, layerdoc.CodeCycle)
}

func TestCheckMissingDocument(t *testing.T) {
	out, err := runCommand(t, "check", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeNotFound)
}
