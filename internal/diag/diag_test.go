package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akashmaji946/molcore/internal/diag"
	"github.com/akashmaji946/molcore/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatShowsSourceLineAndCaret(t *testing.T) {
	src := "temp.x = ;"
	_, err := parser.ParseProgram(src)
	require.Error(t, err)

	r := diag.New(&bytes.Buffer{})
	out := r.Format(err, src)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, src)
	assert.Contains(t, out, "^")
}

func TestWriteWritesToDestination(t *testing.T) {
	src := "temp.x = ;"
	_, err := parser.ParseProgram(src)
	require.Error(t, err)

	var buf bytes.Buffer
	r := diag.New(&buf)
	require.NoError(t, r.Write(err, src))
	assert.True(t, strings.Contains(buf.String(), "error:"))
}

func TestFormatWithoutLocationStillRendersMessage(t *testing.T) {
	r := diag.New(&bytes.Buffer{})
	out := r.Format(assertError{"plain failure"}, "irrelevant")
	assert.Contains(t, out, "plain failure")
}

type assertError struct{ msg string }

func (e assertError) Error() string { return e.msg }
