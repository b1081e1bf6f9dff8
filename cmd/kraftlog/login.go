// ABOUTME: CLI command for configuring the server connection and identity.
// ABOUTME: Stores server URL, token, and user id in the config file.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	loginServer string
	loginToken  string
	loginUser   string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Configure server connection",
	Long: `Configure the sync server connection and local identity.

Examples:
  kraftlog login --server https://api.example.com --user 7c9e6679-7425-40de-944b-e07fc1f90ae7
  kraftlog login --token <bearer-token>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginServer != "" {
			cfg.ServerURL = loginServer
		}
		if loginToken != "" {
			cfg.Token = loginToken
		}
		if loginUser != "" {
			if _, err := uuid.Parse(loginUser); err != nil {
				return fmt.Errorf("invalid user id %q: %w", loginUser, err)
			}
			cfg.UserID = loginUser
		}

		deviceID, err := cfg.EnsureDeviceID()
		if err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		color.Green("✓ Configuration saved")
		fmt.Printf("  Server: %s\n", cfg.GetServerURL())
		fmt.Printf("  Device: %s\n", deviceID)
		if cfg.UserID != "" {
			fmt.Printf("  User:   %s\n", cfg.UserID)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginServer, "server", "", "Sync server base URL")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Bearer token for API requests")
	loginCmd.Flags().StringVar(&loginUser, "user", "", "User id (UUID)")
	rootCmd.AddCommand(loginCmd)
}
