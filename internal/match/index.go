package match

import (
	"modscout/internal/catalog"
	"modscout/internal/textnorm"
)

// aliasEntry is one matchable alias with its precomputed token list.
type aliasEntry struct {
	Name   string
	Tokens []string
}

// Index holds the derived lookup structures for one catalog load. It is
// built once, never mutated, and shared read-only across match attempts.
// A new catalog load produces an entirely new Index.
type Index struct {
	entities []catalog.Entity
	// hashOwners maps each validated hash to the entities carrying it, in
	// catalog order. Owner count drives the rarity bonus.
	hashOwners map[string][]int
	// keywords is the per-entity union of normalized name, tag, variant
	// name, and alias tokens.
	keywords []textnorm.TokenSet
	// nameTokens is the per-entity name and tag tokens only, for the
	// capped direct-name-support contribution.
	nameTokens []textnorm.TokenSet
	// aliases lists each entity's strict-matchable aliases (variant names
	// and variant alias strings).
	aliases [][]aliasEntry
	// entityHashes is each entity's sorted validated hash set.
	entityHashes [][]string
	// tokenOwners maps strong keyword tokens (three or more characters) to
	// their owning entities, for negative evidence.
	tokenOwners map[string][]int
}

// NewIndex derives the lookup structures from a loaded catalog. Cost is
// linear in total hashes plus total keywords.
func NewIndex(entities []catalog.Entity) *Index {
	idx := &Index{
		entities:     entities,
		hashOwners:   make(map[string][]int),
		keywords:     make([]textnorm.TokenSet, len(entities)),
		nameTokens:   make([]textnorm.TokenSet, len(entities)),
		aliases:      make([][]aliasEntry, len(entities)),
		entityHashes: make([][]string, len(entities)),
		tokenOwners:  make(map[string][]int),
	}
	for i, entity := range entities {
		names := textnorm.Tokenize(entity.Name)
		names.AddAll(textnorm.Tokenize(entity.Tags))
		idx.nameTokens[i] = names

		keywords := make(textnorm.TokenSet, len(names))
		keywords.AddAll(names)

		for _, variant := range entity.Variants {
			idx.addAlias(i, variant.Name, keywords)
			for _, alias := range variant.Aliases {
				idx.addAlias(i, alias, keywords)
			}
		}
		idx.keywords[i] = keywords

		for token := range keywords {
			if len(token) >= 3 {
				idx.tokenOwners[token] = append(idx.tokenOwners[token], i)
			}
		}
		idx.entityHashes[i] = entity.Hashes()
		for _, hash := range idx.entityHashes[i] {
			idx.hashOwners[hash] = append(idx.hashOwners[hash], i)
		}
	}
	return idx
}

func (x *Index) addAlias(entityIdx int, alias string, keywords textnorm.TokenSet) {
	tokens := textnorm.Tokenize(alias).Sorted()
	if len(tokens) == 0 {
		return
	}
	for _, token := range tokens {
		keywords.Add(token)
	}
	x.aliases[entityIdx] = append(x.aliases[entityIdx], aliasEntry{Name: alias, Tokens: tokens})
}

// Len returns the number of indexed entities.
func (x *Index) Len() int {
	return len(x.entities)
}

// Entity returns the catalog record at the given index.
func (x *Index) Entity(i int) catalog.Entity {
	return x.entities[i]
}

// HashOwnerCount returns how many entities carry the given hash.
func (x *Index) HashOwnerCount(hash string) int {
	return len(x.hashOwners[hash])
}
