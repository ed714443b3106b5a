package search

// Source produces run configurations. Axes and composed spaces both
// satisfy it, so a product can mix the two freely.
type Source interface {
	// Count reports how many configurations Configs yields.
	Count() int
	// Configs materializes the run configurations in declared order.
	Configs() ([]map[string]any, error)
}

// Axis is a single sweep dimension: it decides a fixed set of
// configuration keys, one assignment per run.
type Axis interface {
	Source
	isAxis()
}

// GridAxis assigns each value in Values to every key in Keys. One run
// per value.
type GridAxis struct {
	Keys   []string
	Values []any
}

func (GridAxis) isAxis() {}

func (g GridAxis) Count() int { return len(g.Values) }

func (g GridAxis) Configs() ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(g.Values))
	for _, v := range g.Values {
		row := make(map[string]any, len(g.Keys))
		for _, k := range g.Keys {
			row[k] = v
		}
		out = append(out, row)
	}
	return out, nil
}

// ConstAxis pins every key to a single value. In configuration it is a
// template over GridAxis, so building one from a tag yields a GridAxis
// with a one-element value list; the type exists so constant
// dimensions can also be assembled directly in code.
type ConstAxis struct {
	Keys  []string
	Value any
}

func (ConstAxis) isAxis() {}

func (c ConstAxis) Count() int { return 1 }

func (c ConstAxis) Configs() ([]map[string]any, error) {
	return GridAxis{Keys: c.Keys, Values: []any{c.Value}}.Configs()
}
