package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	authToken string
	apiURL    string = "http://localhost:8787"
	output    string = "text" // "text" or "json"
)

var rootCmd = &cobra.Command{
	Use:   "devfinds",
	Short: "DevFinds CLI - Manage your DevFinds friends from the terminal",
	Long: `DevFinds CLI provides command-line access to your DevFinds account.
Send, accept and reject friend requests and list your friends.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if authToken == "" {
			authToken = os.Getenv("DEVFINDS_TOKEN")
		}
		if authToken == "" && requiresToken(cmd) {
			return fmt.Errorf("DEVFINDS_TOKEN environment variable not set\nRun `devfinds login` or export DEVFINDS_TOKEN=<your-token>")
		}
		if output != "text" && output != "json" {
			return fmt.Errorf("unknown output format %q (use text or json)", output)
		}
		return nil
	},
}

func requiresToken(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || cmd.Parent() == nil {
		return false
	}
	return cmd != loginCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "Authentication token (defaults to DEVFINDS_TOKEN env var)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", apiURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&output, "output", output, "Output format: text or json")

	// Add command groups
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(friendRequestsCmd)
	rootCmd.AddCommand(friendsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
