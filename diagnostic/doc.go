// Package diagnostic provides the structured failure values produced by
// validation and construction.
//
// A CheckError is a value, not a panic: validation returns the full tree
// of everything wrong with a request, and construction surfaces the first
// aggregate failure it cannot recover from. Errors nest, so a failure
// deep inside a container arrives attached to the path that led there.
//
// Key capabilities:
//   - Code: machine-readable taxonomy of failure shapes
//   - CheckError: target, message lines, optional child, offending value
//   - Aggregate: ordered collection of per-key child failures
//   - ConfigurationError: registry misuse, distinct from value errors
package diagnostic
