package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notely"
)

var (
	verbose     bool
	apiURL      string
	sessionFile string
	ephemeral   bool
	ordering    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notely",
	Short: "A terminal client for a REST notes service",
	Long: `notely signs in to a notes backend and lets you list, search, write and
delete your notes from the command line or an interactive terminal UI.

The API location is read from NOTES_API_HOST and NOTES_API_BASE (a .env file
in the working directory is honoured) unless --api is given.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		if err := notely.LoadEnv(); err != nil {
			slog.Warn("ignoring unreadable .env file", "error", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default from NOTES_API_HOST + NOTES_API_BASE)")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session-file", "", "File the session token is kept in (default from NOTES_SESSION_FILE)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the session in memory only")
	rootCmd.PersistentFlags().StringVar(&ordering, "ordering", "", "Ordering sent with note listings (e.g. -updated_at)")
}

// newClient wires a client from the global flags plus extra.
func newClient(extra ...notely.Option) *notely.Client {
	opts := []notely.Option{
		notely.WithBaseURL(apiURL),
		notely.WithSessionFile(sessionFile),
		notely.WithEphemeral(ephemeral),
		notely.WithOrdering(ordering),
		notely.WithLogger(slog.Default()),
		notely.WithWatcherErrorHandler(func(err error) {
			slog.Warn("session watcher failed", "error", err)
		}),
	}
	return notely.New(append(opts, extra...)...)
}

// signedIn wires a client and restores the persisted session, failing when
// there is none or it has expired.
func signedIn(ctx context.Context) *notely.Client {
	return restore(ctx, newClient())
}

// restore starts client, which refreshes the notes once, and exits unless a
// session is active.
func restore(ctx context.Context, client *notely.Client) *notely.Client {
	if err := client.Start(ctx); err != nil {
		fatal("Failed to restore session", err)
	}
	if !client.Session().SignedIn() {
		fmt.Fprintln(os.Stderr, "Not signed in. Run `notely login` first.")
		os.Exit(1)
	}
	return client
}
