package format

import (
	"io"

	"github.com/dhamidi/eqsolve/solver"
	"github.com/jedib0t/go-pretty/v6/table"
)

const approximateCaption = "approximate: singular system solved by pseudo-inverse"

// TableEncoder renders the solution as a box-drawn table.
type TableEncoder struct {
	w        io.Writer
	opts     Options
	res      *solver.Result
	markdown bool
}

func NewTableEncoder(w io.Writer, opts Options) *TableEncoder {
	return &TableEncoder{w: w, opts: opts}
}

// NewMarkdownEncoder renders the same table as GitHub-flavored markdown.
func NewMarkdownEncoder(w io.Writer, opts Options) *TableEncoder {
	return &TableEncoder{w: w, opts: opts, markdown: true}
}

func (e *TableEncoder) Encode(res *solver.Result) error {
	e.res = res
	return encode(e.w, e)
}

func (e *TableEncoder) MarshalText() ([]byte, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Variable", "Value"})
	for _, name := range e.res.Variables {
		t.AppendRow(table.Row{name, e.opts.Value(e.res.Values[name])})
	}
	if e.res.Approximate {
		t.SetCaption(approximateCaption)
	}

	var out string
	if e.markdown {
		out = t.RenderMarkdown()
	} else {
		out = t.Render()
	}
	return []byte(out + "\n"), nil
}
