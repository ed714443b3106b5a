// Package registry tracks hierarchies of constructable types.
//
// A Registry is built once, at startup, for one hierarchy root: every
// concrete type registers under an explicit parent with a discriminator
// tag, intermediate types register with an empty tag, and construction
// metadata (parameter specs, ordering, the constructor function) hangs
// off each entry. Registration is single threaded; after wiring, a
// Registry is immutable and safe for concurrent reads.
//
// Key types:
//   - Registry: one hierarchy, resolved root-down
//   - Entry: a registered type with its parent link and constructor
//   - Constructor: per-resolution record with merged parameter specs
//   - Parameter: the context a single constructor argument is checked in
//   - Template: an alternate, reduced constructor signature that expands
//     into canonical configuration
package registry
