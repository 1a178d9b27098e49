package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/projects/app")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects/app"), expanded)
}

func TestExpandPathPlain(t *testing.T) {
	expanded, err := ExpandPath("/tmp/app")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/app", expanded)
}

func TestWriteReportFileCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "nested", "scan.md")
	require.NoError(t, WriteReportFile(target, []byte("# report\n")))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "# report\n", string(data))
}

func TestValidatePathRejectsDirectory(t *testing.T) {
	assert.Error(t, ValidatePath(t.TempDir()))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 1, CountLines(""))
	assert.Equal(t, 1, CountLines("one"))
	assert.Equal(t, 2, CountLines("one\n"))
	assert.Equal(t, 3, CountLines("one\ntwo\nthree"))
}
