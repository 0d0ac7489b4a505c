// Package catalog loads the reference database of known game entities.
//
// The database is a JSON document listing entities (characters, weapons)
// with their aliases, named variants, and per-variant identifying hashes.
// Malformed hash entries are dropped at load time so nothing downstream
// ever sees an invalid hash. An empty database is valid, just useless.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"modscout/internal/iniscan"
	"modscout/internal/logging"
)

// Variant is a named sub-form of an entity (an alternate outfit or skin)
// carrying its own alias list.
type Variant struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Entity is one catalogued game object the matcher can resolve a folder to.
// Records are immutable after load.
type Entity struct {
	Name            string              `json:"name"`
	Tags            string              `json:"tags,omitempty"`
	Type            string              `json:"type,omitempty"`
	Variants        []Variant           `json:"variants,omitempty"`
	HashesByVariant map[string][]string `json:"hashes,omitempty"`
}

// Hashes returns the entity's full hash set across all variants, sorted and
// deduplicated. Every hash is already validated 8-hex lowercase.
func (e Entity) Hashes() []string {
	if len(e.HashesByVariant) == 0 {
		return nil
	}
	seen := make(map[string]struct{})
	for _, hashes := range e.HashesByVariant {
		for _, hash := range hashes {
			seen[hash] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for hash := range seen {
		out = append(out, hash)
	}
	sort.Strings(out)
	return out
}

// Load reads and validates a reference database file. Entities without a
// display name and hash entries that fail validation are dropped silently;
// only an unreadable or unparsable file is an error.
func Load(path string, logger *slog.Logger) ([]Entity, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var raw []Entity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return sanitize(raw, logger), nil
}

// sanitize drops unusable records and canonicalizes every hash entry.
func sanitize(raw []Entity, logger *slog.Logger) []Entity {
	entities := make([]Entity, 0, len(raw))
	droppedHashes := 0
	for _, entity := range raw {
		entity.Name = strings.TrimSpace(entity.Name)
		if entity.Name == "" {
			continue
		}
		if len(entity.HashesByVariant) > 0 {
			cleaned := make(map[string][]string, len(entity.HashesByVariant))
			for variant, hashes := range entity.HashesByVariant {
				kept := make([]string, 0, len(hashes))
				for _, hash := range hashes {
					normalized, ok := iniscan.NormalizeHash(hash)
					if !ok {
						droppedHashes++
						continue
					}
					kept = append(kept, normalized)
				}
				if len(kept) > 0 {
					cleaned[variant] = kept
				}
			}
			entity.HashesByVariant = cleaned
		}
		entities = append(entities, entity)
	}
	if droppedHashes > 0 && logger != nil {
		logger.Debug("dropped malformed catalog hashes",
			logging.Int("count", droppedHashes))
	}
	return entities
}
