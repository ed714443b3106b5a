// Package params provides the structured configuration container handed
// to validation and construction.
//
// A Params wraps a plain map decoded from YAML or JSON, tracking the dot
// path that led to it (its history) so error messages can point at the
// exact location inside a large file. Nested maps read back as child
// Params with extended history; every read is logged, defaults included,
// so the effective configuration of a run is fully reconstructable.
//
// Key capabilities:
//   - Pop/Get with automatic wrapping of nested maps and lists
//   - typed pops (PopInt, PopBool, PopChoice, ...) with coercion
//   - flattening to dotted keys and back (AsFlatDict, Unflatten)
//   - deterministic content hashing and file round trips
package params
