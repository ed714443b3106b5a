package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"config-forge/params"
)

var envCmd = &cobra.Command{
	Use:   "env <config-file>",
	Short: "Substitute {type: ENV, key: NAME} nodes from the environment",
	Long: "Replaces every {type: ENV, key: NAME} mapping in the file with the\n" +
		"value of $NAME and prints the result. Inside the engine the same\n" +
		"request is built against the parameter's declared type; here the\n" +
		"value's type is inferred from its text.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := params.Load(args[0])
		if err != nil {
			return err
		}
		resolved, err := substituteEnv(p.AsDict())
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(resolved)
		if err != nil {
			return fmt.Errorf("encode resolved config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func substituteEnv(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if t["type"] == "ENV" {
			key, _ := t["key"].(string)
			if key == "" {
				return nil, fmt.Errorf("ENV request is missing a key")
			}
			val, ok := os.LookupEnv(key)
			if !ok {
				return nil, fmt.Errorf("environment variable %s is not set", key)
			}
			return params.InferAndCast(val)
		}
		out := make(map[string]any, len(t))
		for k, e := range t {
			r, err := substituteEnv(e)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			r, err := substituteEnv(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = r
		}
		return out, nil
	}
	return v, nil
}
