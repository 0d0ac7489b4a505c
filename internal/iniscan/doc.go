// Package iniscan extracts matching signals from mod configuration files.
//
// Mod INI files are untrusted input: they arrive in arbitrary encodings,
// with malformed lines and foreign-locale text. Every function in this
// package degrades to "no signal" instead of returning an error: a hash
// line that does not parse is dropped, bytes that do not decode are
// substituted, and an empty result is always valid.
package iniscan
