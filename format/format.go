package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dhamidi/eqsolve/solver"
)

// Encoder writes a solution. MarshalText renders the most recently encoded
// result.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *solver.Result) error
}

type Options struct {
	// Precision is the number of decimals for values; negative means the
	// shortest representation that round-trips.
	Precision int
}

var encoders = map[string]func(io.Writer, Options) Encoder{
	"text":     func(w io.Writer, o Options) Encoder { return NewLineEncoder(w, o) },
	"table":    func(w io.Writer, o Options) Encoder { return NewTableEncoder(w, o) },
	"markdown": func(w io.Writer, o Options) Encoder { return NewMarkdownEncoder(w, o) },
	"json":     func(w io.Writer, o Options) Encoder { return NewJSONEncoder(w, o) },
	"yaml":     func(w io.Writer, o Options) Encoder { return NewYAMLEncoder(w, o) },
}

// Names returns the encoder names accepted by NewEncoder.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func NewEncoder(name string, w io.Writer, opts Options) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return newEncoder(w, opts), nil
}

// Value formats a solution value.
func (o Options) Value(v float64) string {
	if o.Precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', o.Precision, 64)
}

func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
