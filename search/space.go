package search

import (
	"golang.org/x/sync/errgroup"

	"config-forge/params"
)

// Space is a composed search: a full description of the runs to
// perform.
type Space interface {
	Source
	isSpace()
}

// Grid is the cartesian product of its members. Every run takes one
// configuration from each member and merges them; later members
// overwrite keys they share with earlier ones.
type Grid struct {
	Members []Source
}

func (Grid) isSpace() {}

func (g Grid) Count() int {
	n := 1
	for _, m := range g.Members {
		n *= m.Count()
	}
	return n
}

func (g Grid) Configs() ([]map[string]any, error) {
	out := []map[string]any{{}}
	for _, m := range g.Members {
		rows, err := m.Configs()
		if err != nil {
			return nil, err
		}
		next := make([]map[string]any, 0, len(out)*len(rows))
		for _, head := range out {
			for _, row := range rows {
				merged := make(map[string]any, len(head)+len(row))
				for k, v := range head {
					merged[k] = v
				}
				for k, v := range row {
					merged[k] = v
				}
				next = append(next, merged)
			}
		}
		out = next
	}
	return out, nil
}

// Chain concatenates the runs of its member spaces in order.
type Chain struct {
	Members []Space
}

func (Chain) isSpace() {}

func (c Chain) Count() int {
	n := 0
	for _, m := range c.Members {
		n += m.Count()
	}
	return n
}

func (c Chain) Configs() ([]map[string]any, error) {
	out := make([]map[string]any, 0, c.Count())
	for _, m := range c.Members {
		rows, err := m.Configs()
		if err != nil {
			return nil, err
		}
		out = append(out, rows...)
	}
	return out, nil
}

// FileGrid treats each named file as one finished run configuration.
// Files load concurrently; the result keeps file order.
type FileGrid struct {
	Files []string
}

func (FileGrid) isSpace() {}

func (f FileGrid) Count() int { return len(f.Files) }

func (f FileGrid) Configs() ([]map[string]any, error) {
	out := make([]map[string]any, len(f.Files))
	var g errgroup.Group
	for i, name := range f.Files {
		i, name := i, name
		g.Go(func() error {
			p, err := params.Load(name)
			if err != nil {
				return err
			}
			out[i] = p.AsDict()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
