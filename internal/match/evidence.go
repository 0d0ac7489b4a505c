package match

// ReasonKind identifies one kind of scoring evidence. Downstream consumers
// branch on the kind, never on display text.
type ReasonKind string

const (
	// ReasonHashOverlap records an identifying hash shared between the
	// folder and the entity. Primary evidence.
	ReasonHashOverlap ReasonKind = "hash_overlap"
	// ReasonAliasStrict records an alias whose every token appeared in the
	// folder's tokens. Primary evidence.
	ReasonAliasStrict ReasonKind = "alias_strict"
	// ReasonDeepToken records keyword hits among nested file and subfolder
	// name tokens.
	ReasonDeepToken ReasonKind = "deep_token"
	// ReasonSectionToken records keyword hits among INI section tokens.
	ReasonSectionToken ReasonKind = "section_token"
	// ReasonContentToken records keyword hits among INI key and path tokens.
	ReasonContentToken ReasonKind = "content_token"
	// ReasonTokenOverlap records the fraction of the entity's keyword set
	// found across the folder's buckets. Supporting evidence only.
	ReasonTokenOverlap ReasonKind = "token_overlap"
	// ReasonNameSupport records overlap restricted to the literal entity
	// name and tag tokens, capped low. Never primary.
	ReasonNameSupport ReasonKind = "name_support"
	// ReasonNegative records folder tokens that uniquely belong to a
	// different entity. Points are negative.
	ReasonNegative ReasonKind = "negative_evidence"
	// ReasonTypeMismatch records a penalty for an entity whose coarse type
	// differs from the caller-supplied expectation. Points are negative.
	ReasonTypeMismatch ReasonKind = "type_mismatch"
	// ReasonAIRerank records an optional external re-ranking signal scored
	// like any other evidence.
	ReasonAIRerank ReasonKind = "ai_rerank"
)

// Primary reports whether this kind alone justifies automatic acceptance.
func (k ReasonKind) Primary() bool {
	return k == ReasonHashOverlap || k == ReasonAliasStrict
}

// priority orders reason kinds for truncation and summary selection. Lower
// is stronger. Truncation keeps the strongest kinds, never dropping them in
// favor of weaker ones.
func (k ReasonKind) priority() int {
	switch k {
	case ReasonHashOverlap:
		return 0
	case ReasonAliasStrict:
		return 1
	case ReasonDeepToken:
		return 2
	case ReasonSectionToken:
		return 3
	case ReasonContentToken:
		return 4
	case ReasonTokenOverlap:
		return 5
	case ReasonNameSupport:
		return 6
	case ReasonNegative:
		return 7
	case ReasonAIRerank:
		return 8
	default:
		return 9
	}
}

// Reason is one structured scoring contribution. Exactly which optional
// fields are set depends on the kind: hash reasons carry Hash, alias reasons
// carry Alias, token bucket reasons carry Count and Tokens.
type Reason struct {
	Kind   ReasonKind `json:"kind"`
	Points float64    `json:"points"`
	Hash   string     `json:"hash,omitempty"`
	Alias  string     `json:"alias,omitempty"`
	Count  int        `json:"count,omitempty"`
	Tokens []string   `json:"tokens,omitempty"`
}

func hasPrimaryReason(reasons []Reason) bool {
	for _, r := range reasons {
		if r.Kind.Primary() {
			return true
		}
	}
	return false
}

func hasReasonKind(reasons []Reason, kind ReasonKind) bool {
	for _, r := range reasons {
		if r.Kind == kind {
			return true
		}
	}
	return false
}
