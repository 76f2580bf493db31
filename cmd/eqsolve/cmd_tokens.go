package main

import (
	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/dhamidi/eqsolve/source"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|url|-]",
		Short: "Print the token stream of a system",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := sourceArg(args)
			data, err := fetch(cmd.Context(), cmd, src)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Position", "Kind", "Literal", "Value"})

			lex := parser.NewLexer(data, source.DisplayName(src))
			for {
				tok, err := lex.Next()
				if err != nil {
					t.Render()
					return err
				}
				value := ""
				if tok.Kind == parser.TokenNumber {
					value = format.Number(tok.Value)
				}
				t.AppendRow(table.Row{tok.Pos.String(), tok.Kind.String(), tok.Literal, value})
				if tok.Kind == parser.TokenEOF {
					break
				}
			}
			t.Render()
			return nil
		},
	}
}
