package match

import "sort"

// rankCandidates orders score states deterministically: score descending,
// then entity name ascending, then catalog position. Feeding the same
// candidates in any permutation yields the same ranking.
func rankCandidates(states []scored, idx *Index) []scored {
	sort.SliceStable(states, func(a, b int) bool {
		if states[a].score != states[b].score {
			return states[a].score > states[b].score
		}
		nameA := idx.entities[states[a].entityIdx].Name
		nameB := idx.entities[states[b].entityIdx].Name
		if nameA != nameB {
			return nameA < nameB
		}
		return states[a].entityIdx < states[b].entityIdx
	})
	return states
}

// decision captures why the decider settled on a status, for logging.
type decision struct {
	Status Status
	Reason string
}

// decide applies acceptance policy to the ranked score states.
//
// AutoMatched requires all of: top score at or above the threshold, margin
// over the runner-up at or above the configured margin, and at least one
// primary-evidence reason (hash overlap or strict alias) on the winner.
// Ambiguity overrides force NeedsReview even when those nominally pass:
// a runner-up that itself carries primary evidence (including aggregate
// structural evidence at the policy minimum), an ultra-close score pair, or
// a winner whose signals are negative-penalized mixed evidence.
func decide(ranked []scored, p Policy) decision {
	if len(ranked) == 0 {
		return decision{Status: StatusNoMatch, Reason: "no_overlapping_candidates"}
	}
	top := ranked[0]
	margin := top.score
	var second *scored
	if len(ranked) > 1 {
		second = &ranked[1]
		margin = top.score - second.score
	}

	if top.score >= p.AcceptThreshold && margin >= p.AcceptMargin && hasPrimaryReason(top.reasons) {
		switch {
		case second != nil && (hasPrimaryReason(second.reasons) || second.structuralPrimary(p)):
			return decision{Status: StatusNeedsReview, Reason: "multi_entity_primary_evidence"}
		case second != nil && top.score-second.score <= p.UltraCloseDelta:
			return decision{Status: StatusNeedsReview, Reason: "ultra_close_scores"}
		case hasReasonKind(top.reasons, ReasonNegative) && !hasPositiveNonSupport(top.reasons):
			return decision{Status: StatusNeedsReview, Reason: "mixed_negative_signals"}
		default:
			return decision{Status: StatusAutoMatched, Reason: "threshold_margin_primary"}
		}
	}

	if top.score >= p.ReviewFloor {
		return decision{Status: StatusNeedsReview, Reason: "below_acceptance_policy"}
	}
	return decision{Status: StatusNoMatch, Reason: "below_review_floor"}
}

// hasPositiveNonSupport reports whether any reason beyond bare name support
// and token overlap contributes positively.
func hasPositiveNonSupport(reasons []Reason) bool {
	for _, r := range reasons {
		if r.Points <= 0 {
			continue
		}
		if r.Kind == ReasonNameSupport || r.Kind == ReasonTokenOverlap {
			continue
		}
		return true
	}
	return false
}
