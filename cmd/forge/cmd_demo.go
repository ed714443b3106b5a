package main

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"config-forge/engine"
	"config-forge/examples/pipeline"
	"config-forge/params"
)

var demoCmd = &cobra.Command{
	Use:   "demo [config-file]",
	Short: "Validate and build the example pipeline",
	Long: "Checks a pipeline configuration, printing the full diagnostic tree\n" +
		"when it fails, then builds it and dumps the result. With no\n" +
		"argument the built-in known-good configuration is used; point it\n" +
		"at examples/pipeline/broken.yaml to see the failure report.",
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := pipeline.DefaultConfig()
	source := "built-in demo config"
	if len(args) == 1 {
		p, err := params.Load(args[0])
		if err != nil {
			return err
		}
		cfg = p.AsDict()
		source = args[0]
	}

	d := pipeline.NewDispatcher(engine.NewEnvRewriter())
	if ce := d.Check(pipeline.Target(), cfg); ce != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ce.Render(""))
		return fmt.Errorf("%s failed validation", source)
	}
	built, err := d.Build(pipeline.Target(), cfg)
	if err != nil {
		return fmt.Errorf("build %s: %w", source, err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), spew.Sdump(built))
	return err
}
