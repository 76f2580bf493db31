package main

import (
	"github.com/dhamidi/eqsolve/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			server := lsp.NewServer(version, lsp.WithStrict(cfg.Strict))
			return server.RunStdio()
		},
	}

	cmd.Flags().Bool("strict", false, "report singular systems as errors")

	return cmd
}
