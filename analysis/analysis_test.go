package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/solver"
	"github.com/dhamidi/eqsolve/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSolves(t *testing.T) {
	r := Run([]byte("2x + 3y = 8\nx - y = 2\n"), Options{Name: "sys.txt"})
	require.NoError(t, r.Err)
	assert.Equal(t, KindNone, r.Kind)
	require.NotNil(t, r.System)
	require.NotNil(t, r.Result)
	assert.InDelta(t, 2.8, r.Result.Values["x"], 1e-9)
	assert.InDelta(t, 0.8, r.Result.Values["y"], 1e-9)
	assert.Equal(t, "sys.txt", r.Document.Name)
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		strict bool
		kind   Kind
		line   int
		column int
	}{
		{"empty", "\n  \n", false, KindInput, 0, 0},
		{"missing equals", "x + y = 1\n\nx - y\n", false, KindInput, 3, 1},
		{"illegal character", "x + y = 1\nx * y = 2\n", false, KindLex, 2, 3},
		{"syntax", "x + y = 1\nx + = 2\n", false, KindParse, 2, 5},
		{"dimension", "x + y = 1\n", false, KindDimension, 0, 0},
		{"singular strict", "x + y = 2\n2x + 2y = 4\n", true, KindSingular, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Run([]byte(tt.input), Options{Strict: tt.strict})
			require.Error(t, r.Err)
			assert.Equal(t, tt.kind, r.Kind)
			assert.Nil(t, r.Result)

			pos, ok := Position(r.Err)
			if tt.line == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.line, pos.Line)
			assert.Equal(t, tt.column, pos.Column)
		})
	}
}

func TestRunSingularFallback(t *testing.T) {
	r := Run([]byte("x + y = 2\n2x + 2y = 4\n"), Options{})
	require.NoError(t, r.Err)
	assert.True(t, r.Result.Approximate)
}

func TestClassifyWrapped(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{fmt.Errorf("load: %w", source.ErrEmpty), KindInput},
		{fmt.Errorf("load: %w", &source.LineError{Line: 1, Text: "x"}), KindInput},
		{fmt.Errorf("parse: %w", &parser.LexError{Char: '*'}), KindLex},
		{fmt.Errorf("parse: %w", &parser.ParseError{}), KindParse},
		{fmt.Errorf("solve: %w", &solver.DimensionError{Equations: 1, Unknowns: 2}), KindDimension},
		{fmt.Errorf("solve: %w", &solver.SingularError{Rank: 1, Unknowns: 2}), KindSingular},
		{errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}
