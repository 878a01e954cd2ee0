// Package main provides a command-line client for the resume matching API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-matcher/internal/client"
)

var rootCmd = &cobra.Command{
	Use:           "matchctl",
	Short:         "Resume matching API client",
	Long:          "matchctl submits a resume and job description for analysis and shows past analyses.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	apiURL  string
	uiURL   string
	token   string
	guestID string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("MATCHCTL_API_URL", "http://localhost:8080/api/v1"), "API base URL")
	rootCmd.PersistentFlags().StringVar(&uiURL, "ui", os.Getenv("UI_BASE_URL"), "Web app base URL used for detail links")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("MATCHCTL_TOKEN"), "Bearer token from sign-in")
	rootCmd.PersistentFlags().StringVar(&guestID, "guest", os.Getenv("MATCHCTL_GUEST_ID"), "Guest id (dev/local servers only)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newClient() *client.Client {
	c := client.New(apiURL, token)
	c.GuestID = guestID
	c.UIBaseURL = uiURL
	return c
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
