package process

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/gops/goprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinder(t *testing.T) {
	f := NewFinder()
	assert.NotNil(t, f)

	assert.Equal(t, 0, len(f.procList))

	err := f.ListProcesses()
	assert.NoError(t, err)
	assert.NotEmpty(t, f.procList)
}

func TestFinder_Matching(t *testing.T) {
	f := &Finder{findAll: func() []goprocess.P {
		return []goprocess.P{
			{PID: 10, Exec: "roundboard", Path: "/usr/local/bin/roundboard"},
			{PID: 11, Exec: "gopls", Path: "/home/me/go/bin/gopls"},
			{PID: 12, Exec: "RoundBoard.exe", Path: `C:\Tools\RoundBoard.exe`},
		}
	}}

	require.NoError(t, f.ListProcesses())

	got := f.Matching("roundboard")
	require.Len(t, got, 2)
	assert.Equal(t, 10, got[0].PID)
	assert.Equal(t, 12, got[1].PID)

	assert.True(t, f.IsProcessRunning(11))
	assert.False(t, f.IsProcessRunning(13))

	// Refreshing replaces the list.
	f.findAll = func() []goprocess.P { return nil }
	require.NoError(t, f.ListProcesses())
	assert.False(t, f.IsProcessRunning(10))
}

func TestPIDFile(t *testing.T) {
	dir := t.TempDir()

	pid, err := ReadPIDFile(dir)
	require.NoError(t, err)
	assert.Zero(t, pid)

	remove, err := WritePIDFile(dir)
	require.NoError(t, err)

	pid, err = ReadPIDFile(dir)
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)

	require.NoError(t, remove())
	require.NoError(t, remove())

	require.NoError(t, os.WriteFile(filepath.Join(dir, PIDFileName), []byte("abc"), 0o600))

	_, err = ReadPIDFile(dir)
	require.Error(t, err)
}
