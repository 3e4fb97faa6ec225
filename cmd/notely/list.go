package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/notely"
	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
)

var (
	listSearch   string
	listPage     int
	listPageSize int
	listMatch    string
	listJSON     bool
	listYAML     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notes",
	Long: `List your notes, newest page first as the server orders them.

--search is sent to the server. --match filters the returned page locally
by title with a glob pattern (e.g. "meeting*" or "{todo,done}-*").`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			fmt.Fprintf(os.Stderr, "Error: invalid --match pattern %q\n", listMatch)
			os.Exit(1)
		}

		ctx := context.Background()
		client := newClient(notely.WithPaging(listPage, listPageSize))
		// Signed out, so the term is only remembered for the restore refresh.
		client.Notes().SetSearch(ctx, listSearch)
		restore(ctx, client)

		if err := client.Notes().Err(); err != nil {
			fatal("Error listing notes", err)
		}

		all := client.Notes().Notes()
		filtered := all
		if listMatch != "" {
			filtered = all[:0:0]
			for _, n := range all {
				if ok, _ := doublestar.Match(listMatch, n.Title); ok {
					filtered = append(filtered, n)
				}
			}
		}

		switch {
		case listJSON:
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		case listYAML:
			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(filtered); err != nil {
				fatal("Error encoding YAML", err)
			}
			return
		}

		if len(filtered) == 0 {
			fmt.Println("No notes found.")
			return
		}
		for _, n := range filtered {
			snippet := strings.ReplaceAll(forms.Snippet(n.Content), "\n", " ")
			fmt.Printf("%-6s %s\n", n.ID, n.Title)
			if snippet != "" {
				fmt.Printf("       %s\n", snippet)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search term sent to the server")
	listCmd.Flags().IntVar(&listPage, "page", core.DefaultPage, "Page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", core.DefaultPageSize, "Notes per page")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Glob pattern over titles, applied locally")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
}
