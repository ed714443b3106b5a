// Package engine validates and builds values from configuration,
// directed by schema types and a type registry.
//
// A Dispatcher routes three kinds of targets to an ordered list of
// handler families: schema.Type values, constructor records
// (*registry.Constructor), and parameter contexts (*registry.Parameter).
// The first family that claims a target resolves it; list position is
// priority.
//
// # Key capabilities
//
//   - Check(target, v): full-scan validation. Returns a
//     *diagnostic.CheckError tree describing every failure under the
//     target, or nil. Never mutates v, never panics.
//   - Build(target, v): construction. Returns the finished value or the
//     first error encountered. Configuration maps are consumed
//     recursively; nested targets re-enter the dispatcher.
//   - Rewriters: ordered value substitutions (environment injection,
//     user tables) applied before dispatch on both paths.
//
// # Handler families
//
//   - Primitives: int, float, bool, str. Checks are strict (a bool is
//     never an int); builds coerce the way constructors do.
//   - Collections: List, Set, Tuple, Dict, Union over any claimed
//     member types, with per-element failure aggregation.
//   - Values: None and Any.
//   - Hierarchy: registered type trees selected by a "type"
//     discriminator, including template indirection.
//   - Records: flat registered types with no discriminator.
//   - Enums: registered member-name lookups.
//   - Constructors: parameter-order gate, key diff, and per-parameter
//     recursion for constructor records.
//   - Parameters: argument contexts, including the dependent forms that
//     read sibling arguments (DependentCheck, DependentBuild,
//     DependentUnion).
//
// A typical assembly mirrors the registration site:
//
//	reg := registry.For[Meat]()
//	// ... reg.MustRegister entries ...
//	d := engine.New([]engine.Handler{
//		engine.NewParameters(),
//		engine.NewConstructors(),
//		engine.NewHierarchy(reg),
//		engine.Primitives{},
//		engine.Collections{},
//		engine.Values{},
//	})
//	if err := d.Check(schema.Of[Meat](), cfg); err != nil {
//		fmt.Println(err.Render(""))
//	}
package engine
