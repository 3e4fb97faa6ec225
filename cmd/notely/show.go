package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := signedIn(ctx)

		n, err := client.Notes().Fetch(ctx, core.ID(args[0]))
		if err != nil {
			fatal("Error reading note", err)
		}

		if showJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(n); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		fmt.Printf("Created: %s\n", forms.FormatTimestamp(n.CreatedAt))
		fmt.Printf("Updated: %s\n\n", forms.FormatTimestamp(n.UpdatedAt))
		fmt.Printf("# %s\n\n", n.Title)
		for _, line := range forms.Lines(n.Content) {
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output in JSON format")
}
