// Command swaad is the storefront CLI: run the server, inspect routes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "swaad",
	Short: "Swaad — food delivery storefront",
	Long:  "Swaad is the web storefront for the food-delivery backend. It serves the menu, cart, checkout, order tracking, and the admin console.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the swaad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("swaad", version)
	},
}
