package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/notely/pkg/forms"
)

var passwordStdin bool

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and remember the session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		authenticate(forms.ModeLogin, args[0])
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create an account and sign in with it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		authenticate(forms.ModeRegister, args[0])
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := newClient()
		if err := client.Start(ctx); err != nil {
			fatal("Failed to restore session", err)
		}
		client.Logout(ctx)
		fmt.Println("Signed out.")
	},
}

func authenticate(mode forms.AuthMode, username string) {
	password, err := readPassword(os.Stdin, passwordStdin)
	if err != nil {
		fatal("Failed to read password", err)
	}

	ctx := context.Background()
	client := newClient()
	submit := client.Login
	if mode == forms.ModeRegister {
		submit = client.Register
	}
	if err := submit(ctx, username, password); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if !client.Session().SignedIn() {
		fmt.Fprintln(os.Stderr, "Session was rejected by the server.")
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s.\n", client.View().Username)
}

// readPassword prompts on the terminal without echo, or reads one line from
// r when fromStdin is set or r is not a terminal.
func readPassword(r *os.File, fromStdin bool) (string, error) {
	fd := int(r.Fd())
	if !fromStdin && term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	}
}
