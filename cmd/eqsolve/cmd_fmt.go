package main

import (
	"errors"
	"os"

	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/source"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file|url|-]",
		Short: "Print a system in canonical form",
		Long: `Print a system in canonical form to stdout: one equation per line,
single spaces around operators, unit coefficients dropped.

Use -w to overwrite the file in place (requires a local file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := sourceArg(args)
			if fmtOverwrite && (src == source.Stdin || source.IsURL(src)) {
				return errors.New("-w requires a local file argument")
			}

			doc, err := load(cmd.Context(), cmd, src)
			if err != nil {
				return err
			}
			sys, err := parseDocument(doc)
			if err != nil {
				return err
			}

			output := []byte(format.Render(sys) + "\n")
			if fmtOverwrite {
				return os.WriteFile(src, output, 0644)
			}
			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
