package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/eqsolve/ui"
	"github.com/spf13/cobra"
)

func newUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web UI server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd.Context())
			server, err := ui.NewServer(ui.Config{
				Strict:   cfg.Strict,
				MaxBytes: cfg.MaxBytes,
				Format:   cfg.FormatOptions(),
			})
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			displayAddr := cfg.Addr
			if strings.HasPrefix(displayAddr, ":") {
				displayAddr = "localhost" + displayAddr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", displayAddr)
			return server.Serve(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "address to listen on")
	addSolveFlags(cmd.Flags())

	return cmd
}
