package textnorm

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// enableStatePattern matches a leading disabled/off marker on folder names.
// Mod managers prefix folders with markers like "DISABLED " or "off_" to park
// a mod without deleting it; the marker carries no identity signal.
var enableStatePattern = regexp.MustCompile(`(?i)^(?:disabled|off)[\s_\-]+`)

// tokenSplitPattern matches whitespace runs for the final token split.
var tokenSplitPattern = regexp.MustCompile(`\s+`)

// Normalize cleans a raw name into a comparable lowercase string.
//
// Steps, in order: strip a leading enable-state marker, transliterate to a
// Latin approximation, replace non-alphanumeric characters with spaces,
// lowercase, optionally delete digits, drop skip-words, and collapse
// whitespace. An empty result means the input carried no usable signal.
func Normalize(text string, skipNumbers bool, skipwords TokenSet) string {
	cleaned := latinize(text)
	if skipNumbers {
		cleaned = strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return -1
			}
			return r
		}, cleaned)
	}
	raw := tokenSplitPattern.Split(cleaned, -1)
	kept := make([]string, 0, len(raw))
	for _, token := range raw {
		if token == "" {
			continue
		}
		if skipwords.Has(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// Tokenize splits a raw name into its set of lowercase tokens. Skip-words and
// digits are retained; duplicates collapse.
func Tokenize(text string) TokenSet {
	raw := tokenSplitPattern.Split(latinize(text), -1)
	set := make(TokenSet, len(raw))
	for _, token := range raw {
		set.Add(token)
	}
	return set
}

// latinize applies the shared normalization prefix: marker strip,
// transliteration, punctuation removal, and lowercasing.
func latinize(text string) string {
	text = enableStatePattern.ReplaceAllString(strings.TrimSpace(text), "")
	text = unidecode.Unidecode(norm.NFKC.String(text))
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
