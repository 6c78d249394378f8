package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blog",
	Short: "Blog list CLI",
	Long:  "Command line interface for interacting with the blog list API",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// GetRoot returns the root command so subcommand packages can attach to it.
func GetRoot() *cobra.Command {
	return rootCmd
}
