package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "decorhub",
	Short:         "DecorHub booking API",
	Long:          "DecorHub serves the home-decoration booking marketplace API and its maintenance commands.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userRoleCmd)

	// Development
	rootCmd.AddCommand(tokenCmd)
}
