// Package search expands declarative sweep descriptions into concrete
// run configurations.
//
// A search space is itself configuration: axes and spaces are
// registered types selected by a "type" tag, so the same check/build
// machinery that validates a single run validates the sweep that
// generates it. GridAxis ranges a set of keys over a value list, Grid
// takes the cartesian product of its members, Chain concatenates
// spaces, and FileGrid pulls finished configurations from disk.
//
//	cfg := map[string]any{
//		"type": "product",
//		"members": []any{
//			map[string]any{"type": "grid", "keys": "lr", "values": []any{0.1, 0.01}},
//			map[string]any{"type": "const", "keys": "epochs", "value": 20},
//		},
//	}
//	runs, err := search.Expand(cfg) // two runs, each with lr and epochs set
package search
