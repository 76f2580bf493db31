package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult() *solver.Result {
	return &solver.Result{
		Variables: []string{"x", "y"},
		Values:    map[string]float64{"x": 2.8000000000000003, "y": 0.8},
		Rank:      2,
	}
}

func encodeWith(t *testing.T, name string, opts Options, res *solver.Result) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(name, &buf, opts)
	require.NoError(t, err)
	require.NoError(t, enc.Encode(res))
	return buf.String()
}

func TestLineEncoder(t *testing.T) {
	out := encodeWith(t, "text", Options{Precision: -1}, sampleResult())
	assert.Equal(t, "x = 2.8000000000000003\ny = 0.8\n", out)

	out = encodeWith(t, "text", Options{Precision: 2}, sampleResult())
	assert.Equal(t, "x = 2.80\ny = 0.80\n", out)
}

func TestTableEncoder(t *testing.T) {
	out := encodeWith(t, "table", Options{Precision: 3}, sampleResult())
	assert.Contains(t, out, "Variable")
	assert.Contains(t, out, "2.800")
	assert.Contains(t, out, "0.800")
	assert.NotContains(t, out, approximateCaption)

	res := sampleResult()
	res.Approximate = true
	out = encodeWith(t, "table", Options{Precision: 3}, res)
	assert.Contains(t, out, approximateCaption)
}

func TestMarkdownEncoder(t *testing.T) {
	out := encodeWith(t, "markdown", Options{Precision: 1}, sampleResult())
	assert.Contains(t, out, "| x ")
	assert.Contains(t, out, "| 2.8 ")
	assert.True(t, strings.HasPrefix(out, "|"), "markdown table should start with a pipe: %q", out)
}

func TestJSONEncoder(t *testing.T) {
	out := encodeWith(t, "json", Options{Precision: 4}, sampleResult())
	var got struct {
		Variables   []string           `json:"variables"`
		Solution    map[string]float64 `json:"solution"`
		Approximate bool               `json:"approximate"`
		Rank        int                `json:"rank"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"x", "y"}, got.Variables)
	assert.Equal(t, 2.8, got.Solution["x"])
	assert.Equal(t, 0.8, got.Solution["y"])
	assert.False(t, got.Approximate)
	assert.Equal(t, 2, got.Rank)
}

func TestYAMLEncoder(t *testing.T) {
	res := sampleResult()
	res.Approximate = true
	out := encodeWith(t, "yaml", Options{Precision: -1}, res)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, true, got["approximate"])
	solution, ok := got["solution"].(map[string]any)
	require.True(t, ok, "solution is %T", got["solution"])
	assert.Equal(t, 0.8, solution["y"])
}

func TestNewEncoderUnknown(t *testing.T) {
	_, err := NewEncoder("xml", &bytes.Buffer{}, Options{})
	require.Error(t, err)
	for _, name := range Names() {
		assert.Contains(t, err.Error(), name)
	}
}

func TestASTJSONEncoder(t *testing.T) {
	sys, err := parser.Parse([]byte("x + 2y = 3"))
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(sys))
	assert.Contains(t, buf.String(), `"variable": "y"`)
	assert.Contains(t, buf.String(), `"coefficient": 2`)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}
