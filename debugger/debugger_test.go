package debugger

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebuggerWritesTrace(t *testing.T) {
	root := t.TempDir()

	dbg, err := NewDebugger(root, "run-1")
	require.NoError(t, err)

	dbg.Debug("first line")
	dbg.Debugf("block at %d skipped", 74)
	require.NoError(t, dbg.Close())

	require.True(t, strings.HasSuffix(dbg.Path(), ".run-1.txt"))

	data, err := os.ReadFile(dbg.Path())
	require.NoError(t, err)
	require.Contains(t, string(data), "first line")
	require.Contains(t, string(data), "block at 74 skipped")
}

func TestNilDebuggerIsSafe(t *testing.T) {
	var dbg *Debugger

	dbg.Debug("dropped")
	dbg.Debugf("also %s", "dropped")
	require.NoError(t, dbg.Close())
}
