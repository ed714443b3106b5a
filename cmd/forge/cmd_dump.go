package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"config-forge/params"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <config-file>",
	Short: "Print the decoded configuration with concrete Go types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := params.Load(args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(p.AsDict()))
		return err
	},
}
