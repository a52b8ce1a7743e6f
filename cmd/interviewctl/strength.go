package main

import (
	"fmt"

	"mock-interview-backend/pkg/validation"

	"github.com/spf13/cobra"
)

var strengthCmd = &cobra.Command{
	Use:   "strength <password>...",
	Short: "Rate password strength",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStrength,
}

var remoteStrength bool

func init() {
	strengthCmd.Flags().BoolVar(&remoteStrength, "remote", false, "Ask the API instead of rating locally")

	rootCmd.AddCommand(strengthCmd)
}

func runStrength(cmd *cobra.Command, args []string) error {
	for _, password := range args {
		strength := string(validation.PasswordStrength(password))
		if remoteStrength {
			var err error
			if strength, err = newClient().PasswordStrength(cmd.Context(), password); err != nil {
				return fmt.Errorf("failed to rate password: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), strength)
	}
	return nil
}
