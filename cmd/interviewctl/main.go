// Package main provides interviewctl, a terminal client for practice interviews.
package main

import (
	"fmt"
	"os"

	"mock-interview-backend/internal/apiclient"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	apiBaseURL string
	authToken  string
)

var rootCmd = &cobra.Command{
	Use:           "interviewctl",
	Short:         "Practice mock interviews from the terminal",
	Long:          "interviewctl uploads a CV, generates questions for a job description and walks through a mock interview against the interview API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "API base URL (default $API_BASE_URL or "+apiclient.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Bearer token to attach the session to an account")
}

func newClient() *apiclient.Client {
	base := apiBaseURL
	if base == "" {
		base = os.Getenv("API_BASE_URL")
	}
	return apiclient.New(base, &apiclient.Options{Token: authToken})
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
