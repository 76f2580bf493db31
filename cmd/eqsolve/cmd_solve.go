package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dhamidi/eqsolve/analysis"
	"github.com/dhamidi/eqsolve/config"
	"github.com/dhamidi/eqsolve/format"
	"github.com/dhamidi/eqsolve/source"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newSolveCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "solve [file|url|-]",
		Short: "Solve a system of linear equations",
		Long: `Solve a system of linear equations, one equation per line:

    2x + 3y = 8
    x - y = 2

The source may be a local file, an http(s) URL or "-" for stdin (the
default). The system must have as many equations as distinct variables.
A singular system gets a least-squares solution and a warning, unless
--strict is set.

Use --watch to solve a local file again every time it changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)
			src := sourceArg(args)

			if !watch {
				return solveOnce(ctx, cmd, cfg, src)
			}
			if src == source.Stdin || source.IsURL(src) {
				return errors.New("--watch requires a local file")
			}
			w, err := source.NewFileWatcher(src, source.DefaultDebounce)
			if err != nil {
				return err
			}
			errOut := newRenderer(cmd.ErrOrStderr())
			return w.Watch(ctx, func() {
				if err := solveOnce(ctx, cmd, cfg, src); err != nil {
					errOut.Error(err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "-- watching %s (%s)\n", src, time.Now().Format(time.TimeOnly))
			})
		},
	}

	addSolveFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", "text", "output format ("+strings.Join(format.Names(), "|")+")")
	cmd.Flags().Bool("show-system", true, "print the parsed system before the solution")
	cmd.Flags().Duration("timeout", source.DefaultTimeout, "timeout for fetching URLs")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "solve again whenever the file changes")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return format.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// addSolveFlags registers the flags shared by every command that solves.
func addSolveFlags(fs *pflag.FlagSet) {
	fs.Int("precision", -1, "decimals in printed values (-1: shortest exact form)")
	fs.Bool("strict", false, "treat a singular system as an error instead of approximating")
	fs.Int64("max-bytes", source.DefaultMaxBytes, "maximum input size in bytes")
}

// solveOnce loads src, prints the system when configured, solves it and
// encodes the result. The system is printed only for human-readable
// outputs so json and yaml stay machine-readable.
func solveOnce(ctx context.Context, cmd *cobra.Command, cfg *config.Config, src string) error {
	data, err := fetch(ctx, cmd, src)
	if err != nil {
		return err
	}

	name := source.DisplayName(src)
	report := analysis.Run(data, analysis.Options{Name: name, Strict: cfg.Strict})
	out := cmd.OutOrStdout()

	if report.System != nil && cfg.ShowSystem && humanOutput(cfg.Output) {
		r := newRenderer(out)
		r.Heading("System")
		fmt.Fprintln(out, format.Render(report.System))
		fmt.Fprintln(out)
		if report.Err == nil {
			r.Heading("Solution")
		}
	}

	if report.Err != nil {
		if report.Kind == analysis.KindInput {
			return fmt.Errorf("%s: %w", name, report.Err)
		}
		return report.Err
	}

	res := report.Result
	if res.Approximate {
		newRenderer(cmd.ErrOrStderr()).Warn(
			"the system is singular (rank %d of %d); showing one least-squares solution out of infinitely many",
			res.Rank, len(res.Variables))
	}

	enc, err := format.NewEncoder(cfg.Output, out, cfg.FormatOptions())
	if err != nil {
		return err
	}
	return enc.Encode(res)
}

func humanOutput(name string) bool {
	switch name {
	case "json", "yaml":
		return false
	}
	return true
}
