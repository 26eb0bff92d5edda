package filter

import (
	"errors"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    int
		wantErr bool
	}{
		{"nil", nil, 0, false},
		{"empty list", []string{}, 0, false},
		{"empty pattern", []string{""}, 1, false},
		{"literal", []string{"a"}, 1, false},
		{"wildcard", []string{".*"}, 1, false},
		{"duplicates", []string{".*", ".*"}, 2, false},
		{"unbalanced paren", []string{"("}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCompileEmptyPatternMatchesEverything(t *testing.T) {
	res, err := Compile([]string{""})
	require.NoError(t, err)

	for _, s := range []string{"", "x", "some longer line"} {
		assert.True(t, matchAny(res, s), "input %q", s)
	}
}

func TestCompileStopsAtFirstInvalid(t *testing.T) {
	res, err := Compile([]string{"ok", "(", "[", "fine"})
	require.Error(t, err)
	assert.Nil(t, res)

	var pe *PatternError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "(", pe.Pattern)
	assert.Equal(t, 1, pe.Index)

	var se *syntax.Error
	require.True(t, errors.As(err, &se), "syntax diagnostic should be unwrappable")
	assert.Equal(t, syntax.ErrMissingParen, se.Code)
	assert.Contains(t, err.Error(), `"("`)
}

func TestCompilePreservesOrder(t *testing.T) {
	res, err := Compile([]string{"b", "a", "c"})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "b", res[0].String())
	assert.Equal(t, "a", res[1].String())
	assert.Equal(t, "c", res[2].String())
}

func TestMatchAnyIsUnanchored(t *testing.T) {
	res, err := Compile([]string{"conn"})
	require.NoError(t, err)
	assert.True(t, matchAny(res, "lost connection to peer"))
	assert.False(t, matchAny(res, "CONN refused"))
}

func TestMatchAnyEmptySet(t *testing.T) {
	assert.True(t, matchAny(nil, ""))
	assert.True(t, matchAny(nil, "anything"))
}
