// Package match provides Levenshtein distance calculation and closest
// candidate selection for "did you mean" hints on unknown discriminators,
// enumeration members, and choice values.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the nearest candidate within a distance budget
package match
