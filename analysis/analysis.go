// Package analysis runs equation text through the whole pipeline
// (preparation, parsing, solving) and classifies what went wrong.
// The command line, the language server and the web UI all report
// through it.
package analysis

import (
	"errors"

	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/solver"
	"github.com/dhamidi/eqsolve/source"
)

// Kind names the stage that rejected the input.
type Kind string

const (
	KindNone      Kind = ""
	KindInput     Kind = "input"
	KindLex       Kind = "lex"
	KindParse     Kind = "parse"
	KindDimension Kind = "dimension"
	KindSingular  Kind = "singular"
	KindInternal  Kind = "internal"
)

// Classify maps an error returned by the pipeline to its Kind.
func Classify(err error) Kind {
	var (
		lexErr  *parser.LexError
		parsErr *parser.ParseError
		lineErr *source.LineError
		dimErr  *solver.DimensionError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &lexErr):
		return KindLex
	case errors.As(err, &parsErr):
		return KindParse
	case errors.As(err, &lineErr), errors.Is(err, source.ErrEmpty):
		return KindInput
	case errors.As(err, &dimErr):
		return KindDimension
	case errors.Is(err, solver.ErrSingular):
		return KindSingular
	default:
		return KindInternal
	}
}

// Options controls Run.
type Options struct {
	// Name is used in error positions.
	Name   string
	Strict bool
}

// Report is the outcome of Run. System is set once parsing succeeded,
// Result once solving did.
type Report struct {
	Document *source.Document
	System   *parser.System
	Result   *solver.Result
	Err      error
	Kind     Kind
}

func (r *Report) fail(err error) *Report {
	r.Err = err
	r.Kind = Classify(err)
	return r
}

// Run prepares, parses and solves data. Parser positions refer to data as
// given, blank lines included.
func Run(data []byte, opts Options) *Report {
	r := &Report{}

	doc, err := source.Prepare(data)
	if err != nil {
		return r.fail(err)
	}
	doc.Name = opts.Name
	r.Document = doc

	var popts []parser.Option
	if opts.Name != "" {
		popts = append(popts, parser.WithFile(opts.Name))
	}
	sys, err := parser.Parse(doc.Source, popts...)
	if err != nil {
		return r.fail(err)
	}
	r.System = sys

	res, err := parser.Walk[*solver.Result](solver.SolverVisitor{Strict: opts.Strict}, sys)
	if err != nil {
		return r.fail(err)
	}
	r.Result = res
	return r
}

// Position returns where err occurred, if it carries a location.
// Errors tied to a whole line report column 1.
func Position(err error) (parser.Position, bool) {
	var (
		lexErr  *parser.LexError
		parsErr *parser.ParseError
		lineErr *source.LineError
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &parsErr):
		return parsErr.Pos, true
	case errors.As(err, &lineErr):
		return parser.Position{Line: lineErr.Line, Column: 1}, true
	}
	return parser.Position{}, false
}
