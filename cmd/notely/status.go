package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the state of every client component as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := newClient()
		if err := client.Start(ctx); err != nil {
			fatal("Failed to restore session", err)
		}

		report := map[string]any{
			"base_url": client.API.BaseURL(),
		}
		for _, c := range []any{client.App, client.Session(), client.Notes(), client.Store} {
			comp, ok := c.(introspection.Component)
			if !ok {
				continue
			}
			if i, ok := c.(introspection.Introspectable); ok {
				report[comp.ComponentType()] = i.State()
			}
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
