package match

// Policy centralizes the matcher's calibration values and acceptance rules.
// The numbers are tuned empirically per game and belong in configuration;
// the gating logic in the decider is the contract, not these values.
type Policy struct {
	// HashBaseScore is granted for every identifying hash shared between
	// the folder and the entity.
	HashBaseScore float64
	// HashRarityBonus is divided by the hash's owner count, so a hash held
	// by a single entity earns the full bonus.
	HashRarityBonus float64
	// AliasStrictBonus is granted when every token of an alias appears in
	// the folder's tokens.
	AliasStrictBonus float64
	// TokenOverlapWeight scales the fraction of the entity's keyword set
	// found in the folder's combined buckets.
	TokenOverlapWeight float64
	// StructuralTokenBonus is granted per distinct keyword hit in the deep,
	// section, and content buckets.
	StructuralTokenBonus float64
	// StructuralPrimaryMinTokens is the unique structural hit count at
	// which aggregate structural evidence blocks a competing auto-accept.
	StructuralPrimaryMinTokens int
	// NameSupportCap limits the contribution of bare name/tag overlap so a
	// single generic word can never drive acceptance.
	NameSupportCap float64
	// NegativePenalty is charged per folder token uniquely owned by a
	// different entity.
	NegativePenalty float64
	// TypeMismatchPenalty is charged when the caller supplied an expected
	// coarse type and the entity's differs.
	TypeMismatchPenalty float64
	// AIRerankWeight scales the optional external re-rank signal.
	AIRerankWeight float64
	// MaxScore clamps every candidate score.
	MaxScore float64

	// AcceptThreshold is the minimum top score for automatic acceptance.
	AcceptThreshold float64
	// AcceptMargin is the minimum lead over the second-ranked candidate.
	AcceptMargin float64
	// ReviewFloor is the minimum top score to surface candidates for review.
	ReviewFloor float64
	// UltraCloseDelta forces review when the top two scores are within this
	// absolute distance, regardless of evidence kind.
	UltraCloseDelta float64

	// TopK bounds the candidate list in results.
	TopK int
	// MaxReasons bounds each candidate's reason list.
	MaxReasons int
	// MaxEvidenceItems bounds each evidence summary list.
	MaxEvidenceItems int
}

// DefaultPolicy returns conservative defaults tuned for single-subject
// character and weapon mods.
func DefaultPolicy() Policy {
	return Policy{
		HashBaseScore:              12,
		HashRarityBonus:            6,
		AliasStrictBonus:           10,
		TokenOverlapWeight:         6,
		StructuralTokenBonus:       1.5,
		StructuralPrimaryMinTokens: 3,
		NameSupportCap:             3,
		NegativePenalty:            2,
		TypeMismatchPenalty:        4,
		AIRerankWeight:             5,
		MaxScore:                   100,
		AcceptThreshold:            10,
		AcceptMargin:               3,
		ReviewFloor:                4,
		UltraCloseDelta:            0.5,
		TopK:                       5,
		MaxReasons:                 12,
		MaxEvidenceItems:           50,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.HashBaseScore <= 0 {
		p.HashBaseScore = d.HashBaseScore
	}
	if p.HashRarityBonus < 0 {
		p.HashRarityBonus = d.HashRarityBonus
	}
	if p.AliasStrictBonus <= 0 {
		p.AliasStrictBonus = d.AliasStrictBonus
	}
	if p.TokenOverlapWeight <= 0 {
		p.TokenOverlapWeight = d.TokenOverlapWeight
	}
	if p.StructuralTokenBonus <= 0 {
		p.StructuralTokenBonus = d.StructuralTokenBonus
	}
	if p.StructuralPrimaryMinTokens <= 0 {
		p.StructuralPrimaryMinTokens = d.StructuralPrimaryMinTokens
	}
	if p.NameSupportCap <= 0 {
		p.NameSupportCap = d.NameSupportCap
	}
	if p.NegativePenalty < 0 {
		p.NegativePenalty = d.NegativePenalty
	}
	if p.TypeMismatchPenalty < 0 {
		p.TypeMismatchPenalty = d.TypeMismatchPenalty
	}
	if p.AIRerankWeight < 0 {
		p.AIRerankWeight = d.AIRerankWeight
	}
	if p.MaxScore <= 0 {
		p.MaxScore = d.MaxScore
	}
	if p.AcceptThreshold <= 0 {
		p.AcceptThreshold = d.AcceptThreshold
	}
	if p.AcceptMargin <= 0 {
		p.AcceptMargin = d.AcceptMargin
	}
	if p.ReviewFloor <= 0 || p.ReviewFloor > p.AcceptThreshold {
		p.ReviewFloor = d.ReviewFloor
	}
	if p.UltraCloseDelta <= 0 {
		p.UltraCloseDelta = d.UltraCloseDelta
	}
	if p.TopK <= 0 {
		p.TopK = d.TopK
	}
	if p.MaxReasons <= 0 {
		p.MaxReasons = d.MaxReasons
	}
	if p.MaxEvidenceItems <= 0 {
		p.MaxEvidenceItems = d.MaxEvidenceItems
	}

	return p
}
