package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse [file|url|-]",
		Short: "Parse a system and dump its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := sourceArg(args)
			doc, err := load(cmd.Context(), cmd, src)
			if err != nil {
				return err
			}
			sys, err := parseDocument(doc)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				return format.NewASTJSONEncoder(cmd.OutOrStdout()).Encode(sys)
			case "text":
				tree, err := parser.Walk[string](treePrinter{}, sys)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), tree)
				return err
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, text)")

	return cmd
}

// treePrinter renders a system as an indented outline.
type treePrinter struct {
	parser.BaseVisitor[string]
}

func (p treePrinter) VisitSystem(sys *parser.System) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "System variables=[%s]\n", strings.Join(sys.Variables(), " "))
	for i := range sys.Equations {
		eq, err := parser.Walk[string](p, &sys.Equations[i])
		if err != nil {
			return "", err
		}
		sb.WriteString(eq)
	}
	return sb.String(), nil
}

func (p treePrinter) VisitEquation(eq *parser.Equation) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "  Equation %s value=%s\n", eq.Pos, format.Number(eq.Value))
	for _, t := range eq.Terms {
		term, err := parser.Walk[string](p, t)
		if err != nil {
			return "", err
		}
		sb.WriteString(term)
	}
	return sb.String(), nil
}

func (treePrinter) VisitTerm(t parser.Term) (string, error) {
	return fmt.Sprintf("    Term %s coefficient=%s\n", t.Name(), format.Number(t.Coefficient)), nil
}
