package lsp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/eqsolve/analysis"
	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/source"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "eqsolve"

// Diagnostics analyzes text and reports the first problem found. Syntax
// and input errors are errors, unsolvable shapes are warnings and an
// approximate solution is informational.
func Diagnostics(name, text string, strict bool) []protocol.Diagnostic {
	r := analysis.Run([]byte(text), analysis.Options{Name: name, Strict: strict})
	lines := strings.Split(text, "\n")

	switch {
	case r.Err != nil:
		severity := protocol.DiagnosticSeverityError
		if r.Kind == analysis.KindDimension {
			severity = protocol.DiagnosticSeverityWarning
		}
		rng := documentStart(lines)
		if pos, ok := analysis.Position(r.Err); ok {
			rng = errorRange(lines, pos, r.Kind)
		}
		return []protocol.Diagnostic{newDiagnostic(rng, severity, string(r.Kind), message(r.Err))}
	case r.Result.Approximate:
		msg := fmt.Sprintf("system is singular (rank %d of %d); showing a least-squares solution",
			r.Result.Rank, len(r.Result.Variables))
		return []protocol.Diagnostic{newDiagnostic(documentStart(lines), protocol.DiagnosticSeverityInformation, "singular", msg)}
	}
	return []protocol.Diagnostic{}
}

// message strips the position prefix parser errors carry, since the
// diagnostic range already says where.
func message(err error) string {
	var (
		lexErr  *parser.LexError
		parsErr *parser.ParseError
	)
	msg := err.Error()
	switch {
	case errors.As(err, &lexErr):
		return strings.TrimPrefix(msg, lexErr.Pos.String()+": ")
	case errors.As(err, &parsErr):
		return strings.TrimPrefix(msg, parsErr.Pos.String()+": ")
	}
	return msg
}

func newDiagnostic(rng protocol.Range, severity protocol.DiagnosticSeverity, code, msg string) protocol.Diagnostic {
	src := diagnosticSource
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Code:     &protocol.IntegerOrString{Value: code},
		Source:   &src,
		Message:  msg,
	}
}

// errorRange converts a 1-based parser position to an LSP range. Line
// errors cover the whole line, token errors a single character.
func errorRange(lines []string, pos parser.Position, kind analysis.Kind) protocol.Range {
	line := pos.Line - 1
	if line < 0 {
		line = 0
	}
	if kind == analysis.KindInput {
		return protocol.Range{
			Start: protocol.Position{Line: protocol.UInteger(line)},
			End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(lineLength(lines, line))},
		}
	}
	col := pos.Column - 1
	if col < 0 {
		col = 0
	}
	end := col + 1
	if n := lineLength(lines, line); end > n {
		end = n
	}
	if end < col {
		end = col
	}
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(end)},
	}
}

func documentStart(lines []string) protocol.Range {
	return protocol.Range{
		End: protocol.Position{Character: protocol.UInteger(lineLength(lines, 0))},
	}
}

func lineLength(lines []string, line int) int {
	if line < 0 || line >= len(lines) {
		return 0
	}
	return len(strings.TrimRight(lines[line], "\r"))
}

// FormatEdits returns a single edit replacing text with its canonical
// rendering, or nil when text is rejected by the loader or the parser, or
// is already formatted.
func FormatEdits(text string) []protocol.TextEdit {
	doc, err := source.Prepare([]byte(text))
	if err != nil {
		return nil
	}
	sys, err := parser.Parse(doc.Source)
	if err != nil {
		return nil
	}
	formatted := format.Render(sys) + "\n"
	if formatted == text {
		return nil
	}
	lines := strings.Split(text, "\n")
	last := len(lines) - 1
	return []protocol.TextEdit{{
		Range: protocol.Range{
			End: protocol.Position{Line: protocol.UInteger(last), Character: protocol.UInteger(len(lines[last]))},
		},
		NewText: formatted,
	}}
}

// HoverAt shows the value of the variable under pos, if text solves.
func HoverAt(text string, pos protocol.Position, strict bool) *protocol.Hover {
	lines := strings.Split(text, "\n")
	line, col := int(pos.Line), int(pos.Character)
	if line >= len(lines) || col >= len(lines[line]) {
		return nil
	}
	c := lines[line][col]
	if !isLetter(c) {
		return nil
	}

	r := analysis.Run([]byte(text), analysis.Options{Strict: strict})
	if r.Err != nil {
		return nil
	}
	name := string(c)
	value, ok := r.Result.Get(name)
	if !ok {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "`%s = %s`", name, format.Number(value))
	if r.Result.Approximate {
		sb.WriteString("\n\nApproximate: the system is singular.")
	}
	start := protocol.Position{Line: pos.Line, Character: protocol.UInteger(col)}
	end := protocol.Position{Line: pos.Line, Character: protocol.UInteger(col + 1)}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
		Range: &protocol.Range{Start: start, End: end},
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
