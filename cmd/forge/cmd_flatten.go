package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"config-forge/params"
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <config-file>",
	Short: "Print a configuration as dotted keys",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := params.Load(args[0])
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(p.AsFlatDict())
		if err != nil {
			return fmt.Errorf("encode flat view: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}
