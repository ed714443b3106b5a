package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"config-forge/diagnostic"
	"config-forge/internal/ledger"
	"config-forge/params"
	"config-forge/search"
)

var (
	gridOut    string
	gridPrefix string
	gridLedger string
)

var gridCmd = &cobra.Command{
	Use:   "grid <space-file>",
	Short: "Expand a search-space file into run configurations",
	Long: "Reads a search-space description, expands it and either streams\n" +
		"the runs as YAML documents or, with --out, writes one file per run\n" +
		"into a fresh session directory. --ledger records the session and\n" +
		"every run manifest in a sqlite database.",
	Args: cobra.ExactArgs(1),
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().StringVar(&gridOut, "out", "", "directory to write one YAML file per run")
	gridCmd.Flags().StringVar(&gridPrefix, "prefix", "run", "output file name prefix")
	gridCmd.Flags().StringVar(&gridLedger, "ledger", "", "sqlite manifest to record the session in")
}

func runGrid(cmd *cobra.Command, args []string) error {
	src, err := params.Load(args[0])
	if err != nil {
		return err
	}
	runs, err := search.Expand(src.AsDict())
	if err != nil {
		var ce *diagnostic.CheckError
		if errors.As(err, &ce) {
			fmt.Fprintln(cmd.ErrOrStderr(), ce.Render(""))
			return fmt.Errorf("%s does not describe a search space", args[0])
		}
		return err
	}
	if gridOut == "" {
		return streamRuns(cmd, runs)
	}
	return writeRuns(cmd, args[0], runs)
}

func streamRuns(cmd *cobra.Command, runs []*params.Params) error {
	for i, p := range runs {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "---")
		}
		blob, err := yaml.Marshal(p.AsDict())
		if err != nil {
			return fmt.Errorf("encode run %d: %w", i, err)
		}
		if _, err := cmd.OutOrStdout().Write(blob); err != nil {
			return err
		}
	}
	return nil
}

// writeRuns materializes the expansion under a fresh session directory
// named by a uuid, one file per run, written concurrently.
func writeRuns(cmd *cobra.Command, source string, runs []*params.Params) error {
	session := uuid.NewString()
	dir := filepath.Join(gridOut, session)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	manifests := make([]ledger.Run, len(runs))
	var g errgroup.Group
	for i, p := range runs {
		i, p := i, p
		g.Go(func() error {
			h, err := p.Hash()
			if err != nil {
				return fmt.Errorf("hash run %d: %w", i, err)
			}
			path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", gridPrefix, h))
			if err := p.Save(path); err != nil {
				return err
			}
			manifests[i] = ledger.Run{Ordinal: i, Hash: h, Path: path, Config: p.AsDict()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if gridLedger != "" {
		l, err := ledger.Open(gridLedger)
		if err != nil {
			return err
		}
		defer l.Close()
		s := ledger.Session{
			ID:        session,
			CreatedAt: time.Now(),
			Source:    source,
			Total:     len(runs),
		}
		if err := l.Record(s, manifests); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d runs -> %s\n", len(runs), dir)
	return nil
}
