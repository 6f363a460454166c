package cmd

import (
	"fmt"

	"github.com/theirongolddev/pflow/internal/config"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Mark the session as signed in",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return setSession(true)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Mark the session as signed out",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return setSession(false)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func setSession(on bool) error {
	if err := config.SetAuthenticated(on); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if on {
		fmt.Println("  Signed in.")
	} else {
		fmt.Println("  Signed out.")
	}
	return nil
}
