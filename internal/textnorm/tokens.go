package textnorm

import "sort"

// TokenSet is an unordered set of lowercase tokens.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the provided tokens, skipping empties.
func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

// Has reports whether token is present.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Add inserts token into the set. Empty tokens are ignored.
func (s TokenSet) Add(token string) {
	if token == "" {
		return
	}
	s[token] = struct{}{}
}

// AddAll inserts every token from other.
func (s TokenSet) AddAll(other TokenSet) {
	for token := range other {
		s[token] = struct{}{}
	}
}

// Sorted returns the tokens in ascending order. Callers that iterate a set
// while producing output must use Sorted to keep results deterministic.
func (s TokenSet) Sorted() []string {
	if len(s) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(s))
	for token := range s {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
