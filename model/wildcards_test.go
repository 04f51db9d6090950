package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	t.Setenv("SOLARPACK_TEST_USER", "moises")
	defs := map[string]string{"ver": "1.2.0", "name": "Solar"}

	got, err := Expand("$<var:name>$-$<var:ver>$ by $<env:SOLARPACK_TEST_USER>$", defs)
	require.NoError(t, err)
	assert.Equal(t, "Solar-1.2.0 by moises", got)

	got, err = Expand("plain", defs)
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestExpandErrors(t *testing.T) {
	_, err := Expand("x $<var:missing>$", nil)
	assert.ErrorContains(t, err, "[1:3]")
	assert.ErrorContains(t, err, "unknown variable: missing")

	_, err = Expand("$<nocolon>$", nil)
	assert.ErrorIs(t, err, ErrInvalidVariableSyntax)

	_, err = Expand("$<file:x>$", nil)
	assert.ErrorContains(t, err, "unknown wildcard kind")
}

func TestCalcSourceLocation(t *testing.T) {
	buf := "ab\r\ncd\nef"
	assert.Equal(t, "1:1", CalcSourceLocation(buf, 0).String())
	assert.Equal(t, "2:2", CalcSourceLocation(buf, 5).String())
	assert.Equal(t, "3:1", CalcSourceLocation(buf, 7).String())
	assert.Equal(t, "1:1", CalcSourceLocation("\xef\xbb\xbfx", 3).String())
	assert.Equal(t, "3:3", CalcSourceLocation(buf, 100).String())
}
