package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notely/pkg/forms"
)

var (
	profileUsername string
	profileEmail    string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	Long:  `Show your profile. With --username or --email the full profile is sent back with those fields changed.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := signedIn(ctx)
		client.OpenProfile()
		f := client.View().Profile

		changed := false
		if cmd.Flags().Changed("username") {
			f.Username, changed = profileUsername, true
		}
		if cmd.Flags().Changed("email") {
			f.Email, changed = profileEmail, true
		}
		if changed {
			if err := client.UpdateProfile(ctx, f); err != nil {
				fatal("Error updating profile", err)
			}
			vm := client.View()
			f = forms.Profile{Username: vm.Username, Email: vm.Email}
		}

		fmt.Printf("Username: %s\n", f.Username)
		fmt.Printf("Email:    %s\n", f.Email)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileUsername, "username", "", "New username")
	profileCmd.Flags().StringVar(&profileEmail, "email", "", "New email address")
}
