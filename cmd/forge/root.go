// Package main provides the forge CLI: configuration file utilities
// and grid expansion built on the check/build engine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"config-forge/internal/logging"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Validate, transform and expand typed configuration files",
	Long: "Forge works with typed YAML and JSON configuration: flatten and\n" +
		"hash files, substitute environment values, expand search spaces\n" +
		"into per-run files, and demo the diagnostic output.",
	SilenceUsage: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if !verbose {
			return nil
		}
		l, err := logging.Verbose()
		if err != nil {
			return err
		}
		logging.Set(l)
		return nil
	},
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(flattenCmd)
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(demoCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
