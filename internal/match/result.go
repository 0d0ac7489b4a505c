package match

// Status is the terminal outcome of one match attempt.
type Status string

const (
	// StatusAutoMatched means exactly one entity was confidently matched.
	StatusAutoMatched Status = "auto_matched"
	// StatusNeedsReview means the folder is plausibly one of several
	// entities and a human should pick.
	StatusNeedsReview Status = "needs_review"
	// StatusNoMatch means nothing in the catalog overlapped the folder.
	StatusNoMatch Status = "no_match"
)

// Confidence is a presentation tier derived from score and threshold. It is
// computed, never stored, so it can never go stale against a retuned policy.
type Confidence string

const (
	ConfidenceExcellent Confidence = "excellent"
	ConfidenceHigh      Confidence = "high"
	ConfidenceGood      Confidence = "good"
	ConfidenceLow       Confidence = "low"
	ConfidenceNone      Confidence = "none"
)

// ConfidenceFor derives the presentation tier for a score under a policy.
func ConfidenceFor(score float64, p Policy) Confidence {
	p = p.normalized()
	switch {
	case score >= 4*p.AcceptThreshold:
		return ConfidenceExcellent
	case score >= 2*p.AcceptThreshold:
		return ConfidenceHigh
	case score >= p.AcceptThreshold:
		return ConfidenceGood
	case score >= p.ReviewFloor:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// Candidate is an immutable snapshot of one entity's final score state. It
// references the entity by name and type, never by a live catalog pointer.
type Candidate struct {
	Name       string     `json:"name"`
	Type       string     `json:"type,omitempty"`
	Score      float64    `json:"score"`
	Confidence Confidence `json:"confidence"`
	Reasons    []Reason   `json:"reasons,omitempty"`
}

// Evidence is the bounded summary of what matched, for display. Each list
// is deduplicated, sorted, and capped.
type Evidence struct {
	MatchedHashes   []string `json:"matched_hashes,omitempty"`
	MatchedTokens   []string `json:"matched_tokens,omitempty"`
	MatchedSections []string `json:"matched_sections,omitempty"`
}

// Result is the sole artifact the engine produces. It round-trips through
// JSON so the persistence and UI layers can display evidence without
// reimplementing any scoring logic.
type Result struct {
	Status     Status      `json:"status"`
	Best       *Candidate  `json:"best,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
	Evidence   Evidence    `json:"evidence"`
	Summary    string      `json:"summary,omitempty"`
	Mode       Mode        `json:"mode,omitempty"`
}
