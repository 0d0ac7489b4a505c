package match

import (
	"math/rand"
	"reflect"
	"testing"

	"modscout/internal/catalog"
)

func indexOf(names ...string) *Index {
	entities := make([]catalog.Entity, 0, len(names))
	for _, name := range names {
		entities = append(entities, catalog.Entity{Name: name, Type: "Character"})
	}
	return NewIndex(entities)
}

func TestRankCandidatesStableUnderPermutation(t *testing.T) {
	idx := indexOf("Ayaka", "Ganyu", "Hu Tao", "Keqing")
	base := []scored{
		{entityIdx: 0, score: 12},
		{entityIdx: 1, score: 12},
		{entityIdx: 2, score: 20},
		{entityIdx: 3, score: 4},
	}
	want := rankCandidates(append([]scored(nil), base...), idx)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]scored(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := rankCandidates(shuffled, idx)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("ranking changed under permutation:\n%+v\nvs\n%+v", got, want)
		}
	}
}

func TestDecideRequiresPrimaryEvidence(t *testing.T) {
	p := DefaultPolicy()
	// High score and wide margin, but token-overlap evidence only.
	ranked := []scored{{
		entityIdx: 0,
		score:     p.AcceptThreshold * 3,
		reasons:   []Reason{{Kind: ReasonTokenOverlap, Points: 30, Count: 9}},
	}}
	dec := decide(ranked, p)
	if dec.Status == StatusAutoMatched {
		t.Fatalf("accepted without primary evidence: %+v", dec)
	}
	if dec.Status != StatusNeedsReview {
		t.Fatalf("status = %s, want %s", dec.Status, StatusNeedsReview)
	}
}

func TestDecideMultiEntityPrimaryEvidenceForcesReview(t *testing.T) {
	p := DefaultPolicy()
	ranked := []scored{
		{
			entityIdx: 0,
			score:     40,
			reasons:   []Reason{{Kind: ReasonHashOverlap, Points: 18, Hash: "d94c8962"}},
		},
		{
			entityIdx: 1,
			score:     20,
			reasons:   []Reason{{Kind: ReasonAliasStrict, Points: 10, Alias: "sunset"}},
		},
	}
	dec := decide(ranked, p)
	if dec.Status != StatusNeedsReview {
		t.Fatalf("status = %s, want %s (%s)", dec.Status, StatusNeedsReview, dec.Reason)
	}
	if dec.Reason != "multi_entity_primary_evidence" {
		t.Fatalf("decision reason = %q", dec.Reason)
	}
}

func TestDecideAggregateStructuralContestsAccept(t *testing.T) {
	p := DefaultPolicy()
	ranked := []scored{
		{
			entityIdx: 0,
			score:     40,
			reasons:   []Reason{{Kind: ReasonHashOverlap, Points: 18, Hash: "d94c8962"}},
		},
		{
			entityIdx: 1,
			score:     12,
			reasons: []Reason{
				{Kind: ReasonDeepToken, Points: 4.5, Count: 3, Tokens: []string{"a", "b", "c"}},
			},
			structuralUnique: p.StructuralPrimaryMinTokens,
		},
	}
	if dec := decide(ranked, p); dec.Status != StatusNeedsReview {
		t.Fatalf("status = %s, want %s", dec.Status, StatusNeedsReview)
	}
}

func TestDecideUltraCloseForcesReview(t *testing.T) {
	p := DefaultPolicy()
	p.AcceptMargin = 0.1
	p.UltraCloseDelta = 0.5
	ranked := []scored{
		{entityIdx: 0, score: 20.3, reasons: []Reason{{Kind: ReasonHashOverlap, Points: 18}}},
		{entityIdx: 1, score: 20.0, reasons: []Reason{{Kind: ReasonTokenOverlap, Points: 5}}},
	}
	dec := decide(ranked, p)
	if dec.Status != StatusNeedsReview || dec.Reason != "ultra_close_scores" {
		t.Fatalf("decision = %+v", dec)
	}
}

func TestDecideThresholdsAndFloor(t *testing.T) {
	p := DefaultPolicy()
	primary := []Reason{{Kind: ReasonHashOverlap, Points: 18, Hash: "11aa22bb"}}

	if dec := decide(nil, p); dec.Status != StatusNoMatch {
		t.Fatalf("empty candidates: %+v", dec)
	}
	if dec := decide([]scored{{score: p.ReviewFloor - 1, reasons: primary}}, p); dec.Status != StatusNoMatch {
		t.Fatalf("below review floor: %+v", dec)
	}
	if dec := decide([]scored{{score: p.AcceptThreshold - 1, reasons: primary}}, p); dec.Status != StatusNeedsReview {
		t.Fatalf("between floor and threshold: %+v", dec)
	}
	if dec := decide([]scored{{score: p.AcceptThreshold + 10, reasons: primary}}, p); dec.Status != StatusAutoMatched {
		t.Fatalf("clear accept: %+v", dec)
	}
}

func TestConfidenceTiersDerivedFromThreshold(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		score float64
		want  Confidence
	}{
		{p.AcceptThreshold * 4, ConfidenceExcellent},
		{p.AcceptThreshold * 2, ConfidenceHigh},
		{p.AcceptThreshold, ConfidenceGood},
		{p.ReviewFloor, ConfidenceLow},
		{p.ReviewFloor - 1, ConfidenceNone},
	}
	for _, tc := range cases {
		if got := ConfidenceFor(tc.score, p); got != tc.want {
			t.Fatalf("ConfidenceFor(%f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}
