package match

import "modscout/internal/textnorm"

// Mode selects the scan-budget profile that produced the signals. The engine
// records it for reporting; the budgets themselves are applied upstream.
type Mode string

const (
	// ModeQuick covers the cheap first-pass scan (folder name plus a few
	// INI files).
	ModeQuick Mode = "quick"
	// ModeFullScoring covers the exhaustive scan used when quick matching
	// was inconclusive.
	ModeFullScoring Mode = "full_scoring"
)

// Signals is everything observed from one mod folder for one match attempt.
// A Signals value is built per attempt and discarded after use.
type Signals struct {
	// FolderTokens are tokens from the folder's own name.
	FolderTokens textnorm.TokenSet
	// DeepTokens are tokens from nested file and subfolder names.
	DeepTokens textnorm.TokenSet
	// SectionTokens are INI section-header tokens.
	SectionTokens textnorm.TokenSet
	// ContentTokens are INI key-name and path-fragment tokens.
	ContentTokens textnorm.TokenSet
	// Hashes are normalized identifying hashes found in INI files.
	Hashes []string
	// Rerank optionally maps entity names to an external re-ranking weight
	// in [0, 1], scored as one more evidence kind.
	Rerank map[string]float64

	// Scan budget counters, recorded for diagnostics.
	FilesScanned int
	NamesScanned int
	Mode         Mode
}

// AllTokens returns the union of every token bucket.
func (s Signals) AllTokens() textnorm.TokenSet {
	all := make(textnorm.TokenSet,
		len(s.FolderTokens)+len(s.DeepTokens)+len(s.SectionTokens)+len(s.ContentTokens))
	all.AddAll(s.FolderTokens)
	all.AddAll(s.DeepTokens)
	all.AddAll(s.SectionTokens)
	all.AddAll(s.ContentTokens)
	return all
}

// Empty reports whether the folder produced no usable signal at all.
func (s Signals) Empty() bool {
	return len(s.Hashes) == 0 &&
		len(s.FolderTokens) == 0 &&
		len(s.DeepTokens) == 0 &&
		len(s.SectionTokens) == 0 &&
		len(s.ContentTokens) == 0
}
