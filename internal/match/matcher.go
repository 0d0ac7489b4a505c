package match

import (
	"log/slog"

	"modscout/internal/logging"
)

// Matcher scores folder signals against one immutable catalog index. A
// Matcher is safe for concurrent use; every Match call works on its own
// signal bucket and only reads the shared index.
type Matcher struct {
	index  *Index
	policy Policy
	logger *slog.Logger
}

// NewMatcher builds a matcher over the given index. A zero-valued policy
// field falls back to its default; a nil logger disables debug output.
func NewMatcher(index *Index, policy Policy, logger *slog.Logger) *Matcher {
	return &Matcher{
		index:  index,
		policy: policy.normalized(),
		logger: logging.NewComponentLogger(logger, "match"),
	}
}

// Policy returns the normalized policy in effect.
func (m *Matcher) Policy() Policy {
	return m.policy
}

// Match runs one staged match attempt. expectedType optionally narrows the
// coarse type when the caller already knows the folder's grouping (for
// example a folder filed under a "Weapon" tree); pass "" when unknown.
func (m *Matcher) Match(signals Signals, expectedType string) Result {
	if signals.Empty() || m.index.Len() == 0 {
		return Result{
			Status:  StatusNoMatch,
			Summary: "no usable signals",
			Mode:    signals.Mode,
		}
	}

	allTokens := signals.AllTokens()
	states := make([]scored, 0, 8)
	for i := 0; i < m.index.Len(); i++ {
		state := scoreEntity(i, signals, allTokens, m.index, m.policy, expectedType)
		if len(state.reasons) == 0 {
			continue
		}
		states = append(states, state)
	}

	ranked := rankCandidates(states, m.index)
	dec := decide(ranked, m.policy)
	result := assembleResult(dec, ranked, m.index, m.policy)
	result.Mode = signals.Mode

	if m.logger != nil {
		m.logger.Debug("match attempt decided",
			logging.String("status", string(result.Status)),
			logging.String("decision", dec.Reason),
			logging.Int("candidates", len(ranked)),
			logging.Int("hashes", len(signals.Hashes)),
			logging.Int("files_scanned", signals.FilesScanned),
			logging.Int("names_scanned", signals.NamesScanned))
	}
	return result
}
