package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/dhamidi/eqsolve/ebnflex"
	"github.com/dhamidi/eqsolve/parser"
	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the grammar of equation systems as EBNF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := parser.Grammar(); err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}
			_, err := cmd.OutOrStdout().Write(parser.GrammarSource())
			return err
		},
	}

	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string
	var inputs []string

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Parse and verify an EBNF grammar file",
		Long: `Parse and verify an EBNF grammar file.

Each --input file is then recognized with the grammar from the start
production. Lowercase productions are lexical; whitespace between tokens
is skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			grammar, err := ebnf.Parse(filename, f)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return fmt.Errorf("%s: invalid grammar", filename)
			}

			if startProduction != "" {
				if err := ebnf.Verify(grammar, startProduction); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return fmt.Errorf("%s: grammar does not verify from %s", filename, startProduction)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d productions ok\n", filename, len(grammar))

			if len(inputs) > 0 && startProduction == "" {
				return errors.New("--input requires --start")
			}
			failed := 0
			for _, input := range inputs {
				data, err := os.ReadFile(input)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				if err := ebnflex.Recognize(grammar, startProduction, data, input); err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", input)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs rejected by %s", failed, len(inputs), filename)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", parser.GrammarStart, "start production for verification (empty: only check syntax)")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "file to recognize with the grammar (repeatable)")

	return cmd
}

// printErrors prints each entry of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
