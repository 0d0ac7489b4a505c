package match

import (
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"modscout/internal/catalog"
	"modscout/internal/textnorm"
)

func testCatalog() []catalog.Entity {
	return []catalog.Entity{
		{
			Name: "Ayaka",
			Tags: "cryo sword",
			Type: "Character",
			Variants: []catalog.Variant{
				{Name: "Default", Aliases: []string{"kamisato ayaka"}},
				{Name: "Springbloom", Aliases: []string{"springbloom missive"}},
			},
			HashesByVariant: map[string][]string{
				"Default": {"d94c8962", "11aa22bb"},
			},
		},
		{
			Name: "Ganyu",
			Tags: "cryo bow",
			Type: "Character",
			Variants: []catalog.Variant{
				{Name: "Default", Aliases: []string{"ganyu"}},
			},
			HashesByVariant: map[string][]string{
				"Default": {"33cc44dd"},
			},
		},
		{
			Name: "Mistsplitter Reforged",
			Tags: "sword",
			Type: "Weapon",
			Variants: []catalog.Variant{
				{Name: "Default", Aliases: []string{"mistsplitter"}},
			},
		},
	}
}

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	return NewMatcher(NewIndex(testCatalog()), Policy{}, nil)
}

func TestMatchUniqueHashAutoMatches(t *testing.T) {
	m := newTestMatcher(t)
	signals := Signals{
		FolderTokens: textnorm.NewTokenSet("cool", "outfit"),
		Hashes:       []string{"d94c8962"},
		Mode:         ModeQuick,
	}
	result := m.Match(signals, "")
	if result.Status != StatusAutoMatched {
		t.Fatalf("status = %s, want %s (summary %q)", result.Status, StatusAutoMatched, result.Summary)
	}
	if result.Best == nil || result.Best.Name != "Ayaka" {
		t.Fatalf("best = %+v, want Ayaka", result.Best)
	}
	if !hasPrimaryReason(result.Best.Reasons) {
		t.Fatalf("auto-matched winner lacks primary evidence: %+v", result.Best.Reasons)
	}
	if !reflect.DeepEqual(result.Evidence.MatchedHashes, []string{"d94c8962"}) {
		t.Fatalf("evidence hashes = %v", result.Evidence.MatchedHashes)
	}
}

func TestMatchSharedAliasNeedsReview(t *testing.T) {
	entities := []catalog.Entity{
		{Name: "Ayaka", Type: "Character", Variants: []catalog.Variant{{Name: "Sunset"}}},
		{Name: "Ganyu", Type: "Character", Variants: []catalog.Variant{{Name: "Sunset"}}},
	}
	m := NewMatcher(NewIndex(entities), Policy{}, nil)
	result := m.Match(Signals{FolderTokens: textnorm.NewTokenSet("sunset")}, "")
	if result.Status != StatusNeedsReview {
		t.Fatalf("status = %s, want %s", result.Status, StatusNeedsReview)
	}
	if result.Best != nil {
		t.Fatalf("review result must not name a single best candidate, got %+v", result.Best)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected both entities in top-K, got %d", len(result.Candidates))
	}
	if result.Candidates[0].Name != "Ayaka" || result.Candidates[1].Name != "Ganyu" {
		t.Fatalf("tie must rank by name: %q, %q", result.Candidates[0].Name, result.Candidates[1].Name)
	}
	if result.Summary != "Ayaka vs Ganyu" {
		t.Fatalf("summary = %q", result.Summary)
	}
}

func TestMatchNoOverlapIsNoMatch(t *testing.T) {
	m := newTestMatcher(t)
	result := m.Match(Signals{FolderTokens: textnorm.NewTokenSet("zzz", "qqq")}, "")
	if result.Status != StatusNoMatch {
		t.Fatalf("status = %s, want %s", result.Status, StatusNoMatch)
	}
	if len(result.Candidates) != 0 {
		t.Fatalf("no-match result must have an empty candidate list, got %d", len(result.Candidates))
	}
}

func TestMatchEmptySignals(t *testing.T) {
	m := newTestMatcher(t)
	result := m.Match(Signals{}, "")
	if result.Status != StatusNoMatch {
		t.Fatalf("status = %s, want %s", result.Status, StatusNoMatch)
	}
}

func TestMatchDeterminism(t *testing.T) {
	m := newTestMatcher(t)
	signals := Signals{
		FolderTokens:  textnorm.NewTokenSet("ayaka", "springbloom", "missive"),
		DeepTokens:    textnorm.NewTokenSet("body", "ayaka"),
		SectionTokens: textnorm.NewTokenSet("ayaka"),
		Hashes:        []string{"11aa22bb", "d94c8962"},
	}
	first := m.Match(signals, "")
	for i := 0; i < 25; i++ {
		again := m.Match(signals, "")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("match is not deterministic:\n%+v\nvs\n%+v", first, again)
		}
	}
}

func TestMatchBoundedOutput(t *testing.T) {
	hashes := make([]string, 60)
	for i := range hashes {
		hashes[i] = fmt.Sprintf("%08x", 0xa0000000+i)
	}
	entities := []catalog.Entity{{
		Name:            "Hoarder",
		Type:            "Character",
		HashesByVariant: map[string][]string{"Default": hashes},
	}}
	m := NewMatcher(NewIndex(entities), Policy{}, nil)
	result := m.Match(Signals{Hashes: hashes}, "")
	if result.Status != StatusAutoMatched {
		t.Fatalf("status = %s", result.Status)
	}
	if len(result.Evidence.MatchedHashes) > 50 {
		t.Fatalf("evidence hashes not bounded: %d", len(result.Evidence.MatchedHashes))
	}
	for _, c := range result.Candidates {
		if len(c.Reasons) > 12 {
			t.Fatalf("candidate reasons not bounded: %d", len(c.Reasons))
		}
		for _, r := range c.Reasons {
			if !r.Kind.Primary() {
				t.Fatalf("truncation dropped a primary reason for %+v", r)
			}
		}
	}
	if result.Best.Score > m.Policy().MaxScore {
		t.Fatalf("score %f exceeds clamp %f", result.Best.Score, m.Policy().MaxScore)
	}
}

func TestMatchTypeMismatchPenalty(t *testing.T) {
	m := newTestMatcher(t)
	signals := Signals{FolderTokens: textnorm.NewTokenSet("mistsplitter", "reforged")}
	unconstrained := m.Match(signals, "")
	constrained := m.Match(signals, "Character")
	if len(unconstrained.Candidates) == 0 || len(constrained.Candidates) == 0 {
		t.Fatal("expected candidates in both runs")
	}
	if constrained.Candidates[0].Score >= unconstrained.Candidates[0].Score {
		t.Fatalf("expected type mismatch to lower score: %f vs %f",
			constrained.Candidates[0].Score, unconstrained.Candidates[0].Score)
	}
	if !hasReasonKind(constrained.Candidates[0].Reasons, ReasonTypeMismatch) {
		t.Fatalf("missing type mismatch reason: %+v", constrained.Candidates[0].Reasons)
	}
}

func TestMatchRerankContribution(t *testing.T) {
	m := newTestMatcher(t)
	signals := Signals{
		FolderTokens: textnorm.NewTokenSet("cryo"),
		Rerank:       map[string]float64{"Ganyu": 1.0},
	}
	result := m.Match(signals, "")
	var ganyu *Candidate
	for i := range result.Candidates {
		if result.Candidates[i].Name == "Ganyu" {
			ganyu = &result.Candidates[i]
		}
	}
	if ganyu == nil {
		t.Fatalf("Ganyu missing from candidates: %+v", result.Candidates)
	}
	if !hasReasonKind(ganyu.Reasons, ReasonAIRerank) {
		t.Fatalf("missing rerank reason: %+v", ganyu.Reasons)
	}
}

func TestResultRoundTripsThroughJSON(t *testing.T) {
	m := newTestMatcher(t)
	result := m.Match(Signals{Hashes: []string{"d94c8962"}, Mode: ModeFullScoring}, "")
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(result, decoded) {
		t.Fatalf("round trip changed result:\n%+v\nvs\n%+v", result, decoded)
	}
}
