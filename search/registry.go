package search

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"config-forge/engine"
	"config-forge/internal/logging"
	"config-forge/params"
	"config-forge/registry"
	"config-forge/schema"
)

// keySpec is the configuration shape of an axis key set: a single name
// or a list of names.
var keySpec = schema.UnionOf(schema.String, schema.ListOf(schema.String))

// Axes returns the axis hierarchy: "grid" for GridAxis and "const" for
// the ConstAxis template.
func Axes() *registry.Registry {
	r := registry.For[Axis]()
	root := r.Root()

	r.MustRegister(registry.Entry{
		Type:   reflect.TypeOf(GridAxis{}),
		Tag:    "grid",
		Parent: root,
		Params: []registry.ParamSpec{
			registry.Param("keys", keySpec),
			registry.Param("values", schema.ListOf(schema.Any)),
		},
		New: func(args registry.Args) (any, error) {
			return GridAxis{
				Keys:   stringList(args["keys"]),
				Values: args["values"].([]any),
			}, nil
		},
	})
	r.MustRegister(registry.Entry{
		Type:   reflect.TypeOf(ConstAxis{}),
		Tag:    "const",
		Parent: root,
		Template: &registry.Template{
			Params: []registry.ParamSpec{
				registry.Param("keys", keySpec),
				registry.Param("value", schema.Any),
			},
			Expand: func(args registry.Args) (map[string]any, error) {
				return map[string]any{
					"type":   "grid",
					"keys":   args["keys"],
					"values": []any{args["value"]},
				}, nil
			},
		},
	})
	return r
}

// Spaces returns the space hierarchy: "product" for Grid, "chain" for
// Chain and "files" for FileGrid.
func Spaces() *registry.Registry {
	member := schema.UnionOf(schema.Of[Axis](), schema.Of[Space]())
	r := registry.For[Space]()
	root := r.Root()

	r.MustRegister(registry.Entry{
		Type:   reflect.TypeOf(Grid{}),
		Tag:    "product",
		Parent: root,
		Params: []registry.ParamSpec{
			registry.Param("members", schema.ListOf(member)),
		},
		New: func(args registry.Args) (any, error) {
			return Grid{Members: sourceList(args["members"])}, nil
		},
	})
	r.MustRegister(registry.Entry{
		Type:   reflect.TypeOf(Chain{}),
		Tag:    "chain",
		Parent: root,
		Params: []registry.ParamSpec{
			registry.Param("members", schema.ListOf(schema.Of[Space]())),
		},
		New: func(args registry.Args) (any, error) {
			return Chain{Members: spaceList(args["members"])}, nil
		},
	})
	r.MustRegister(registry.Entry{
		Type:   reflect.TypeOf(FileGrid{}),
		Tag:    "files",
		Parent: root,
		Params: []registry.ParamSpec{
			registry.Param("files", schema.ListOf(schema.String)),
		},
		New: func(args registry.Args) (any, error) {
			return FileGrid{Files: stringList(args["files"])}, nil
		},
	})
	return r
}

// NewDispatcher assembles an engine that builds search spaces from
// configuration.
func NewDispatcher() *engine.Dispatcher {
	return engine.New([]engine.Handler{
		engine.NewParameters(),
		engine.NewConstructors(),
		engine.NewHierarchy(Axes()),
		engine.NewHierarchy(Spaces()),
		engine.Primitives{},
		engine.Collections{},
		engine.Values{},
	})
}

// Expand validates cfg as a space description, builds it, and returns
// one Params per run, in declaration order.
func Expand(cfg map[string]any) ([]*params.Params, error) {
	d := NewDispatcher()
	target := schema.Of[Space]()
	if err := d.Check(target, cfg); err != nil {
		return nil, err
	}
	built, err := d.Build(target, cfg)
	if err != nil {
		return nil, err
	}
	rows, err := built.(Space).Configs()
	if err != nil {
		return nil, err
	}
	out := make([]*params.Params, len(rows))
	for i, row := range rows {
		out[i] = params.New(row)
	}
	logging.L().Debug("search space expanded", zap.Int("runs", len(out)))
	return out, nil
}

// stringList accepts the single-string shorthand for a name list.
func stringList(v any) []string {
	switch s := v.(type) {
	case string:
		return []string{s}
	case []any:
		out := make([]string, len(s))
		for i, e := range s {
			out[i] = fmt.Sprint(e)
		}
		return out
	}
	return nil
}

func sourceList(v any) []Source {
	items := v.([]any)
	out := make([]Source, len(items))
	for i, it := range items {
		out[i] = it.(Source)
	}
	return out
}

func spaceList(v any) []Space {
	items := v.([]any)
	out := make([]Space, len(items))
	for i, it := range items {
		out[i] = it.(Space)
	}
	return out
}
