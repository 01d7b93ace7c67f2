package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/chem2smiles/pkg/errors"
)

func TestReadNames(t *testing.T) {
	in := strings.NewReader("Glutamic acid\n\n  Ferulic acid  \n\t\nNiacin\n")

	names, err := readNames(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glutamic acid", "Ferulic acid", "Niacin"}, names)
}

func TestReadNamesEmpty(t *testing.T) {
	names, err := readNames(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestReadInputSingleLiteral(t *testing.T) {
	names, single, err := readInput("Niacin", false, strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, single)
	assert.Equal(t, []string{"Niacin"}, names)
}

func TestReadInputBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("ethanol\nmethanol\n"), 0o644))

	names, single, err := readInput(path, true, strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, single)
	assert.Equal(t, []string{"ethanol", "methanol"}, names)
}

func TestReadInputMissingFile(t *testing.T) {
	_, _, err := readInput(filepath.Join(t.TempDir(), "nope.txt"), true, strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInputUnreadable))
}

func TestReadInputStdin(t *testing.T) {
	for _, arg := range []string{"", "-"} {
		names, single, err := readInput(arg, false, strings.NewReader("a\nb\n"))
		require.NoError(t, err, "arg %q", arg)
		assert.False(t, single)
		assert.Equal(t, []string{"a", "b"}, names)
	}
}
