package format

import (
	"strconv"
	"strings"

	"github.com/dhamidi/eqsolve/parser"
)

// PrettyPrinter renders a system back to equation text, one line per
// equation. Its output parses back to the same system.
type PrettyPrinter struct {
	parser.BaseVisitor[string]
}

// Render returns the canonical text of sys.
func Render(sys *parser.System) string {
	// Every node kind is handled, so Walk cannot fail here.
	out, _ := parser.Walk[string](PrettyPrinter{}, sys)
	return out
}

func (p PrettyPrinter) VisitSystem(sys *parser.System) (string, error) {
	if sys == nil {
		return "", nil
	}
	lines := make([]string, 0, len(sys.Equations))
	for i := range sys.Equations {
		line, err := parser.Walk[string](p, &sys.Equations[i])
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

func (p PrettyPrinter) VisitEquation(eq *parser.Equation) (string, error) {
	parts := make([]string, 0, len(eq.Terms))
	for _, t := range eq.Terms {
		part, err := parser.Walk[string](p, t)
		if err != nil {
			return "", err
		}
		parts = append(parts, part)
	}
	lhs := strings.ReplaceAll(strings.Join(parts, " + "), "+ -", "- ")
	return lhs + " = " + Number(eq.Value), nil
}

func (PrettyPrinter) VisitTerm(t parser.Term) (string, error) {
	switch t.Coefficient {
	case 1:
		return t.Name(), nil
	case -1:
		return "-" + t.Name(), nil
	default:
		return Number(t.Coefficient) + t.Name(), nil
	}
}

// Number formats f in plain decimal notation, which the lexer accepts.
func Number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
