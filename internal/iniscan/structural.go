package iniscan

import (
	"bufio"
	"path/filepath"
	"strings"

	"modscout/internal/textnorm"
)

// TokenizerConfig carries the per-game vocabulary lists for structural
// tokenization. Each supported game has its own idiomatic section and key
// naming, so the lists are configuration, not constants.
type TokenizerConfig struct {
	// SectionAllowShort whitelists section tokens shorter than two
	// characters that are still meaningful (domain abbreviations).
	SectionAllowShort textnorm.TokenSet
	// KeyAllow forces a key's tokens to be kept even when KeyDeny lists it.
	KeyAllow textnorm.TokenSet
	// KeyDeny suppresses tokens from boilerplate keys (draw calls, shader
	// slots) that appear in every mod regardless of subject.
	KeyDeny textnorm.TokenSet
}

// StructuralTokens holds the three token buckets extracted from one INI file.
type StructuralTokens struct {
	Sections textnorm.TokenSet
	Keys     textnorm.TokenSet
	Paths    textnorm.TokenSet
}

// ExtractStructuralTokens pulls section-header tokens, filtered key-name
// tokens, and path-fragment tokens out of configuration text. Malformed
// lines contribute nothing.
func ExtractStructuralTokens(text string, cfg TokenizerConfig) StructuralTokens {
	out := StructuralTokens{
		Sections: make(textnorm.TokenSet),
		Keys:     make(textnorm.TokenSet),
		Paths:    make(textnorm.TokenSet),
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			name := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			for token := range textnorm.Tokenize(splitCamelCase(name)) {
				if len(token) >= 2 || cfg.SectionAllowShort.Has(token) {
					out.Sections.Add(token)
				}
			}
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		keyName := strings.ToLower(strings.TrimSpace(key))
		if keyName == "" {
			continue
		}
		allowed := cfg.KeyAllow.Has(keyName)
		if cfg.KeyDeny.Has(keyName) && !allowed {
			continue
		}
		out.Keys.AddAll(textnorm.Tokenize(keyName))
		if keySuggestsFile(keyName) {
			out.Paths.AddAll(tokenizePathValue(value))
		}
	}
	return out
}

// splitCamelCase inserts spaces at case boundaries so compound section names
// like "TextureOverrideAyakaBody" tokenize into their words.
func splitCamelCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 8)
	prev := rune(0)
	for _, r := range name {
		if prev != 0 && r >= 'A' && r <= 'Z' && !(prev >= 'A' && prev <= 'Z') {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// keySuggestsFile reports whether a key's value should be read as a file
// reference (e.g. "filename", "texturefile", "ps-t0-path").
func keySuggestsFile(key string) bool {
	return strings.Contains(key, "filename") ||
		strings.HasSuffix(key, "file") ||
		strings.HasSuffix(key, "path")
}

// tokenizePathValue tokenizes a path-like value: the final extension segment
// is dropped and the remaining segments are tokenized individually.
func tokenizePathValue(value string) textnorm.TokenSet {
	cleaned := strings.TrimSpace(value)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	tokens := make(textnorm.TokenSet)
	segments := strings.Split(cleaned, "/")
	for i, segment := range segments {
		if i == len(segments)-1 {
			segment = strings.TrimSuffix(segment, filepath.Ext(segment))
		}
		tokens.AddAll(textnorm.Tokenize(segment))
	}
	return tokens
}
