package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notely/pkg/core"
	"github.com/aretw0/notely/pkg/forms"
)

var (
	noteTitle   string
	noteContent string
	noteFile    string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Long:  `Create a note. Content comes from --content, or from --file ("-" for stdin).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		content, err := readContent(noteContent, noteFile)
		if err != nil {
			fatal("Failed to read content", err)
		}

		ctx := context.Background()
		client := signedIn(ctx)
		client.StartCreate()
		n, err := client.SaveNote(ctx, forms.NoteEditor{Title: noteTitle, Content: content})
		if err != nil {
			fatal("Failed to create note", err)
		}
		fmt.Printf("Note %s created.\n", n.ID)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace the title and/or content of a note",
	Long:  `Edit a note. Fields not given keep their current value.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := signedIn(ctx)

		current, err := client.Notes().Fetch(ctx, core.ID(args[0]))
		if err != nil {
			fatal("Error reading note", err)
		}

		editor := forms.NewNoteEditor(&current)
		if cmd.Flags().Changed("title") {
			editor.Title = noteTitle
		}
		if cmd.Flags().Changed("content") || cmd.Flags().Changed("file") {
			if editor.Content, err = readContent(noteContent, noteFile); err != nil {
				fatal("Failed to read content", err)
			}
		}

		n, err := client.SaveNote(ctx, editor)
		if err != nil {
			fatal("Failed to update note", err)
		}
		fmt.Printf("Note %s updated.\n", n.ID)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := signedIn(ctx)

		client.SelectNote(core.ID(args[0]))
		if err := client.ConfirmDelete(ctx); err != nil {
			fatal("Error deleting note", err)
		}
		fmt.Printf("Note %s deleted.\n", args[0])
	},
}

func readContent(content, file string) (string, error) {
	switch file {
	case "":
		return content, nil
	case "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	default:
		b, err := os.ReadFile(file)
		return string(b), err
	}
}

func init() {
	rootCmd.AddCommand(createCmd, editCmd, deleteCmd)
	for _, c := range []*cobra.Command{createCmd, editCmd} {
		c.Flags().StringVar(&noteTitle, "title", "", "Note title")
		c.Flags().StringVar(&noteContent, "content", "", "Note content")
		c.Flags().StringVarP(&noteFile, "file", "f", "", "Read content from a file (- for stdin)")
		c.MarkFlagsMutuallyExclusive("content", "file")
	}
	createCmd.MarkFlagRequired("title")
}
