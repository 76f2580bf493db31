package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dhamidi/eqsolve/analysis"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/source"
	"github.com/spf13/cobra"
)

const syntaxHint = "equations look like: 2x + 3y = 5, -x + y = 0"

// Exit codes.
const (
	exitOK = iota
	exitInput
	exitSyntax
	exitDimension
	exitSingular
)

func exitCode(err error) int {
	switch analysis.Classify(err) {
	case analysis.KindNone:
		return exitOK
	case analysis.KindLex, analysis.KindParse:
		return exitSyntax
	case analysis.KindDimension:
		return exitDimension
	case analysis.KindSingular:
		return exitSingular
	default:
		return exitInput
	}
}

type renderer struct {
	w       io.Writer
	heading lipgloss.Style
	errors  lipgloss.Style
	warning lipgloss.Style
	hint    lipgloss.Style
}

func newRenderer(w io.Writer) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		w:       w,
		heading: r.NewStyle().Bold(true).Underline(true),
		errors:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		hint:    r.NewStyle().Faint(true),
	}
}

func (r *renderer) Heading(title string) {
	fmt.Fprintln(r.w, r.heading.Render(title))
}

func (r *renderer) Error(err error) {
	fmt.Fprintf(r.w, "%s %s\n", r.errors.Render("error:"), err)
	switch analysis.Classify(err) {
	case analysis.KindLex, analysis.KindParse:
		fmt.Fprintln(r.w, r.hint.Render(syntaxHint))
	}
}

func (r *renderer) Warn(format string, args ...any) {
	fmt.Fprintf(r.w, "%s %s\n", r.warning.Render("warning:"), fmt.Sprintf(format, args...))
}

// sourceArg returns the single optional source argument, stdin by default.
func sourceArg(args []string) string {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return source.Stdin
	}
	return args[0]
}

// fetch reads src using the command's configuration and input stream.
func fetch(ctx context.Context, cmd *cobra.Command, src string) ([]byte, error) {
	cfg := getConfig(ctx)
	f := cfg.Fetcher(source.WithStdin(cmd.InOrStdin()))
	return f.Fetch(ctx, src)
}

// load fetches src and prepares its lines, rejecting blank input and
// lines without "=" before anything is parsed.
func load(ctx context.Context, cmd *cobra.Command, src string) (*source.Document, error) {
	cfg := getConfig(ctx)
	doc, err := cfg.Fetcher(source.WithStdin(cmd.InOrStdin())).Load(ctx, src)
	if err != nil {
		if analysis.Classify(err) == analysis.KindInput {
			return nil, fmt.Errorf("%s: %w", source.DisplayName(src), err)
		}
		return nil, err
	}
	return doc, nil
}

// parseDocument parses the raw text of doc so positions match the file.
func parseDocument(doc *source.Document) (*parser.System, error) {
	return parser.Parse(doc.Source, parser.WithFile(doc.DisplayName()))
}
