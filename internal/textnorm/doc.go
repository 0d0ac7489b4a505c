// Package textnorm normalizes and tokenizes raw mod names for matching.
//
// The primary use cases are:
//   - Cleaning folder and file names into comparable lowercase strings
//   - Producing token sets for overlap scoring
//   - Stripping enable-state markers and generic noise words
//
// Normalization transliterates non-Latin scripts to a Latin approximation,
// replaces punctuation with spaces, lowercases, and collapses whitespace.
// Empty output is a valid result and means "no signal".
package textnorm
