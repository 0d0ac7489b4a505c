package config

import (
	"modscout/internal/iniscan"
	"modscout/internal/match"
	"modscout/internal/textnorm"
)

// MatchPolicy converts the matching section into the engine's policy.
func (c *Config) MatchPolicy() match.Policy {
	m := c.Matching
	return match.Policy{
		HashBaseScore:              m.HashBaseScore,
		HashRarityBonus:            m.HashRarityBonus,
		AliasStrictBonus:           m.AliasStrictBonus,
		TokenOverlapWeight:         m.TokenOverlapWeight,
		StructuralTokenBonus:       m.StructuralTokenBonus,
		StructuralPrimaryMinTokens: m.StructuralPrimaryMinTokens,
		NameSupportCap:             m.NameSupportCap,
		NegativePenalty:            m.NegativePenalty,
		TypeMismatchPenalty:        m.TypeMismatchPenalty,
		AIRerankWeight:             m.AIRerankWeight,
		MaxScore:                   m.MaxScore,
		AcceptThreshold:            m.AcceptThreshold,
		AcceptMargin:               m.AcceptMargin,
		ReviewFloor:                m.ReviewFloor,
		UltraCloseDelta:            m.UltraCloseDelta,
		TopK:                       m.TopK,
		MaxReasons:                 m.MaxReasons,
		MaxEvidenceItems:           m.MaxEvidenceItems,
	}
}

// TokenizerConfig converts the tokenizer section into the INI scanner's
// structural token vocabulary.
func (c *Config) TokenizerConfig() iniscan.TokenizerConfig {
	return iniscan.TokenizerConfig{
		SectionAllowShort: textnorm.NewTokenSet(c.Tokenizer.SectionAllowShort...),
		KeyAllow:          textnorm.NewTokenSet(c.Tokenizer.KeyAllow...),
		KeyDeny:           textnorm.NewTokenSet(c.Tokenizer.KeyDeny...),
	}
}

// SkipWordSet returns the configured skip-words as a token set.
func (c *Config) SkipWordSet() textnorm.TokenSet {
	return textnorm.NewTokenSet(c.Tokenizer.SkipWords...)
}
