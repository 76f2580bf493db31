package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/eqsolve/solver"
)

// LineEncoder writes one "name = value" line per variable in sorted order.
type LineEncoder struct {
	w    io.Writer
	opts Options
	res  *solver.Result
}

func NewLineEncoder(w io.Writer, opts Options) *LineEncoder {
	return &LineEncoder{w: w, opts: opts}
}

func (e *LineEncoder) Encode(res *solver.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, name := range e.res.Variables {
		fmt.Fprintf(&sb, "%s = %s\n", name, e.opts.Value(e.res.Values[name]))
	}
	return []byte(sb.String()), nil
}
