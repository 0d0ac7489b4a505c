// Package match implements the staged entity-matching engine.
//
// Given the signals observed from one mod folder (name tokens, structural
// INI tokens, identifying hashes) and an immutable index over the reference
// catalog, the engine scores every overlapping entity, ranks the candidates
// deterministically, and applies acceptance policy to produce a final
// AutoMatched, NeedsReview, or NoMatch result with typed evidence.
//
// The engine is a pure function of its inputs: it performs no I/O, never
// blocks, and may be called concurrently as long as each call gets its own
// Signals value. The Index is read-only after construction and safe to
// share. Ambiguity is a result value, never an error.
package match
