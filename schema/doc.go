// Package schema defines the type descriptors that drive validation and
// construction.
//
// A Type is a small algebraic value: a Kind plus type arguments for
// containers and unions, a reflect.Type for registered object types, and
// a literal binding table for dependent types.
//
// Key types:
//   - Kind: enumeration of descriptor shapes
//   - Type: the descriptor itself, built with ListOf, DictOf, UnionOf,
//     Of, DependentCheck, ...
package schema
