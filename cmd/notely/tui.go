package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notely/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive terminal interface",
	Long: `Open the interactive terminal interface. Signing in or out from another
terminal is picked up while it runs.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer stop()

		client := newClient()
		if err := tui.Run(ctx, client.App, client.Follow); err != nil {
			fatal("Terminal interface failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
