package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"config-forge/params"
)

var hashCmd = &cobra.Command{
	Use:   "hash <config-file>",
	Short: "Print the content hash of a configuration",
	Long: "The hash covers content only: two files that decode to the same\n" +
		"mapping hash identically regardless of key order or formatting.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := params.Load(args[0])
		if err != nil {
			return err
		}
		h, err := p.Hash()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), h)
		return err
	},
}
