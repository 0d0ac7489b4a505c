package match

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// assembleResult turns the ranked score states and the decision into the
// final bounded Result.
func assembleResult(dec decision, ranked []scored, idx *Index, p Policy) Result {
	result := Result{Status: dec.Status}
	if dec.Status == StatusNoMatch || len(ranked) == 0 {
		result.Summary = "no match"
		return result
	}

	limit := p.TopK
	if limit > len(ranked) {
		limit = len(ranked)
	}
	candidates := make([]Candidate, 0, limit)
	for _, state := range ranked[:limit] {
		entity := idx.entities[state.entityIdx]
		candidates = append(candidates, Candidate{
			Name:       entity.Name,
			Type:       entity.Type,
			Score:      state.score,
			Confidence: ConfidenceFor(state.score, p),
			Reasons:    state.reasons,
		})
	}
	result.Candidates = candidates
	result.Evidence = buildEvidence(ranked[0], p)

	top := candidates[0]
	switch dec.Status {
	case StatusAutoMatched:
		result.Best = &top
		result.Summary = fmt.Sprintf("%s: %s", top.Name, describeTopReason(top.Reasons))
	case StatusNeedsReview:
		if len(candidates) > 1 {
			result.Summary = fmt.Sprintf("%s vs %s", candidates[0].Name, candidates[1].Name)
		} else {
			result.Summary = fmt.Sprintf("%s (needs review)", top.Name)
		}
	}
	return result
}

// buildEvidence dedupes, sorts, and caps the winner's matched items.
func buildEvidence(top scored, p Policy) Evidence {
	return Evidence{
		MatchedHashes:   boundedSorted(top.hashMatches, p.MaxEvidenceItems),
		MatchedTokens:   boundedSorted(top.tokenMatches, p.MaxEvidenceItems),
		MatchedSections: boundedSorted(top.sectionMatches, p.MaxEvidenceItems),
	}
}

func boundedSorted(items []string, limit int) []string {
	if len(items) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// describeTopReason renders a one-line description of the winner's
// highest-priority reason. Reasons are already ordered strongest first.
func describeTopReason(reasons []Reason) string {
	if len(reasons) == 0 {
		return "matched"
	}
	r := reasons[0]
	label := titleCaser.String(strings.ReplaceAll(string(r.Kind), "_", " "))
	switch {
	case r.Hash != "":
		return fmt.Sprintf("%s (%s)", label, r.Hash)
	case r.Alias != "":
		return fmt.Sprintf("%s (%q)", label, r.Alias)
	case r.Count > 0:
		return fmt.Sprintf("%s (%d tokens)", label, r.Count)
	default:
		return label
	}
}
