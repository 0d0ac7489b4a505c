package match

import (
	"sort"
	"strings"

	"modscout/internal/textnorm"
)

// scored is the per-entity score state for one match attempt. It is never
// shared across entities.
type scored struct {
	entityIdx      int
	score          float64
	reasons        []Reason
	hashMatches    []string
	tokenMatches   []string
	sectionMatches []string
	// structuralUnique counts distinct keyword hits across the deep,
	// section, and content buckets. At or above the policy minimum the
	// aggregate blocks a competing auto-accept.
	structuralUnique int
}

func (s *scored) add(points float64, reason Reason) {
	reason.Points = points
	s.score += points
	s.reasons = append(s.reasons, reason)
}

func (s *scored) hasPositiveEvidence() bool {
	for _, r := range s.reasons {
		if r.Points > 0 {
			return true
		}
	}
	return false
}

// structuralPrimary reports whether aggregate structural evidence is strong
// enough to contest another candidate's automatic acceptance.
func (s *scored) structuralPrimary(p Policy) bool {
	return s.structuralUnique >= p.StructuralPrimaryMinTokens
}

// scoreEntity computes one entity's score state against the folder signals.
// Contributions are additive and each one is recorded as a typed reason.
// All iteration is over sorted inputs so identical inputs always produce an
// identical score and reason list.
func scoreEntity(i int, signals Signals, allTokens textnorm.TokenSet, idx *Index, p Policy, expectedType string) scored {
	state := scored{entityIdx: i}
	entity := idx.entities[i]

	folderHashes := make(map[string]struct{}, len(signals.Hashes))
	for _, hash := range signals.Hashes {
		folderHashes[hash] = struct{}{}
	}
	for _, hash := range idx.entityHashes[i] {
		if _, ok := folderHashes[hash]; !ok {
			continue
		}
		owners := idx.HashOwnerCount(hash)
		if owners == 0 {
			owners = 1
		}
		state.add(p.HashBaseScore+p.HashRarityBonus/float64(owners),
			Reason{Kind: ReasonHashOverlap, Hash: hash})
		state.hashMatches = append(state.hashMatches, hash)
	}

	seenAliases := make(map[string]struct{})
	for _, alias := range idx.aliases[i] {
		key := strings.Join(alias.Tokens, " ")
		if _, dup := seenAliases[key]; dup {
			continue
		}
		if !containsAll(allTokens, alias.Tokens) {
			continue
		}
		seenAliases[key] = struct{}{}
		state.add(p.AliasStrictBonus, Reason{Kind: ReasonAliasStrict, Alias: alias.Name})
	}

	keywords := idx.keywords[i]
	if len(keywords) > 0 {
		matched := intersectSorted(keywords, allTokens)
		if len(matched) > 0 {
			fraction := float64(len(matched)) / float64(len(keywords))
			state.add(fraction*p.TokenOverlapWeight,
				Reason{Kind: ReasonTokenOverlap, Count: len(matched)})
			state.tokenMatches = matched
		}
	}

	structural := make(textnorm.TokenSet)
	for _, bucket := range []struct {
		kind   ReasonKind
		tokens textnorm.TokenSet
	}{
		{ReasonDeepToken, signals.DeepTokens},
		{ReasonSectionToken, signals.SectionTokens},
		{ReasonContentToken, signals.ContentTokens},
	} {
		matched := intersectSorted(keywords, bucket.tokens)
		if len(matched) == 0 {
			continue
		}
		for _, token := range matched {
			structural.Add(token)
		}
		state.add(float64(len(matched))*p.StructuralTokenBonus,
			Reason{Kind: bucket.kind, Count: len(matched), Tokens: matched})
		if bucket.kind == ReasonSectionToken {
			state.sectionMatches = matched
		}
	}
	state.structuralUnique = len(structural)

	if nameHits := intersectSorted(idx.nameTokens[i], allTokens); len(nameHits) > 0 {
		points := float64(len(nameHits))
		if points > p.NameSupportCap {
			points = p.NameSupportCap
		}
		state.add(points, Reason{Kind: ReasonNameSupport, Count: len(nameHits)})
	}

	if w, ok := signals.Rerank[entity.Name]; ok && w > 0 {
		if w > 1 {
			w = 1
		}
		state.add(w*p.AIRerankWeight, Reason{Kind: ReasonAIRerank})
	}

	// Negative evidence and penalties apply only once some positive signal
	// exists; zero-overlap entities are skipped entirely by the caller.
	if !state.hasPositiveEvidence() {
		return scored{entityIdx: i}
	}

	if foreign := countForeignStrongHits(allTokens, idx, i); foreign > 0 {
		state.add(-p.NegativePenalty*float64(foreign),
			Reason{Kind: ReasonNegative, Count: foreign})
	}

	if expectedType != "" && entity.Type != "" && !strings.EqualFold(expectedType, entity.Type) {
		state.add(-p.TypeMismatchPenalty, Reason{Kind: ReasonTypeMismatch})
	}

	if state.score > p.MaxScore {
		state.score = p.MaxScore
	}
	state.reasons = truncateReasons(state.reasons, p.MaxReasons)
	return state
}

// countForeignStrongHits counts folder tokens that belong to exactly one
// catalog entity other than the one being scored.
func countForeignStrongHits(allTokens textnorm.TokenSet, idx *Index, current int) int {
	count := 0
	for token := range allTokens {
		owners := idx.tokenOwners[token]
		if len(owners) == 1 && owners[0] != current {
			count++
		}
	}
	return count
}

// truncateReasons orders reasons strongest-kind first and caps the list.
// Hash and alias reasons always survive truncation ahead of weaker kinds.
func truncateReasons(reasons []Reason, limit int) []Reason {
	sort.SliceStable(reasons, func(a, b int) bool {
		pa, pb := reasons[a].Kind.priority(), reasons[b].Kind.priority()
		if pa != pb {
			return pa < pb
		}
		if reasons[a].Points != reasons[b].Points {
			return reasons[a].Points > reasons[b].Points
		}
		if reasons[a].Hash != reasons[b].Hash {
			return reasons[a].Hash < reasons[b].Hash
		}
		return reasons[a].Alias < reasons[b].Alias
	})
	if len(reasons) > limit {
		reasons = reasons[:limit]
	}
	return reasons
}

func containsAll(set textnorm.TokenSet, tokens []string) bool {
	for _, token := range tokens {
		if !set.Has(token) {
			return false
		}
	}
	return true
}

// intersectSorted returns the tokens present in both sets, ascending.
func intersectSorted(a, b textnorm.TokenSet) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	var matched []string
	for token := range a {
		if b.Has(token) {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)
	return matched
}
