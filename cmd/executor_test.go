package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorPrintsByDefault(t *testing.T) {
	var out bytes.Buffer
	e := newExecutor(false, "", &out)

	assert.False(t, e.spawns())
	require.NoError(t, e.Run("systemctl reboot"))
	assert.Equal(t, "systemctl reboot\n", out.String())
}

func TestExecutorExecSpawnsDetached(t *testing.T) {
	e := newExecutor(true, "", nil)
	assert.True(t, e.spawns())
	assert.Equal(t, "nohup gimp --new-instance", e.commandLine("gimp --new-instance"))
}

func TestExecutorExecWithPrefix(t *testing.T) {
	e := newExecutor(false, "nohup hyprctl dispatch exec", nil)
	assert.True(t, e.spawns())
	assert.Equal(t,
		"nohup hyprctl dispatch exec gimp --new-instance",
		e.commandLine("gimp --new-instance"))
}

func TestExecutorRunSpawns(t *testing.T) {
	// "true" exits immediately; the spawn must start and release it.
	e := newExecutor(false, "true", nil)
	require.NoError(t, e.Run("ignored"))
}

func TestExecutorEmptyExecWith(t *testing.T) {
	e := newExecutor(false, "   ", nil)
	require.True(t, e.spawns())
	assert.Error(t, e.Run("x"))
}

func TestExecutorSpawnFailure(t *testing.T) {
	e := newExecutor(false, "/nonexistent/binary", nil)
	assert.Error(t, e.Run("x"))
}
