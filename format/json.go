package format

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/dhamidi/eqsolve/solver"
	"gopkg.in/yaml.v3"
)

type jsonSolution struct {
	Variables   []string           `json:"variables" yaml:"variables"`
	Solution    map[string]float64 `json:"solution" yaml:"solution"`
	Approximate bool               `json:"approximate" yaml:"approximate"`
	Rank        int                `json:"rank" yaml:"rank"`
}

func solutionData(res *solver.Result, opts Options) jsonSolution {
	values := make(map[string]float64, len(res.Values))
	for name, v := range res.Values {
		if opts.Precision >= 0 {
			v, _ = strconv.ParseFloat(opts.Value(v), 64)
		}
		values[name] = v
	}
	return jsonSolution{
		Variables:   res.Variables,
		Solution:    values,
		Approximate: res.Approximate,
		Rank:        res.Rank,
	}
}

type JSONEncoder struct {
	w    io.Writer
	opts Options
	res  *solver.Result
}

func NewJSONEncoder(w io.Writer, opts Options) *JSONEncoder {
	return &JSONEncoder{w: w, opts: opts}
}

func (e *JSONEncoder) Encode(res *solver.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(solutionData(e.res, e.opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type YAMLEncoder struct {
	w    io.Writer
	opts Options
	res  *solver.Result
}

func NewYAMLEncoder(w io.Writer, opts Options) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: opts}
}

func (e *YAMLEncoder) Encode(res *solver.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	return yaml.Marshal(solutionData(e.res, e.opts))
}
