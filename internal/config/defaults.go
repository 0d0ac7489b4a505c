package config

const (
	defaultModsDir     = "~/mods"
	defaultCatalogPath = "~/.config/modscout/catalog.json"
	defaultDataDir     = "~/.local/share/modscout"
	defaultLogDir      = "~/.local/share/modscout/logs"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	defaultQuickMaxINIFiles     = 4
	defaultQuickMaxBytesPerFile = 256 * 1024
	defaultQuickMaxNameItems    = 200
	defaultFullMaxINIFiles      = 64
	defaultFullMaxBytesPerFile  = 2 * 1024 * 1024
	defaultFullMaxNameItems     = 5000
	defaultScanCacheSize        = 512
)

// defaultSkipWords are generic mod-scene noise tokens that carry no entity
// identity. Games can extend or replace the list in configuration.
var defaultSkipWords = []string{
	"mod", "mods", "skin", "fix", "fixed", "final", "new", "old",
	"version", "ver", "v1", "v2", "update", "updated", "merged",
	"4k", "2k", "1080p", "hd", "nsfw", "sfw",
}

// defaultKeyDeny suppresses boilerplate INI keys that appear in every mod
// regardless of subject.
var defaultKeyDeny = []string{
	"hash", "handling", "match_priority", "run", "draw", "drawindexed",
	"vb0", "vb1", "vb2", "ib", "ps-t0", "ps-t1", "ps-t2", "vs-t0",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ModsDir:     defaultModsDir,
			CatalogPath: defaultCatalogPath,
			DataDir:     defaultDataDir,
			LogDir:      defaultLogDir,
		},
		Matching: Matching{
			HashBaseScore:              12,
			HashRarityBonus:            6,
			AliasStrictBonus:           10,
			TokenOverlapWeight:         6,
			StructuralTokenBonus:       1.5,
			StructuralPrimaryMinTokens: 3,
			NameSupportCap:             3,
			NegativePenalty:            2,
			TypeMismatchPenalty:        4,
			AIRerankWeight:             5,
			MaxScore:                   100,
			AcceptThreshold:            10,
			AcceptMargin:               3,
			ReviewFloor:                4,
			UltraCloseDelta:            0.5,
			TopK:                       5,
			MaxReasons:                 12,
			MaxEvidenceItems:           50,
		},
		Scan: Scan{
			Quick: ScanBudget{
				MaxINIFiles:     defaultQuickMaxINIFiles,
				MaxBytesPerFile: defaultQuickMaxBytesPerFile,
				MaxNameItems:    defaultQuickMaxNameItems,
			},
			Full: ScanBudget{
				MaxINIFiles:     defaultFullMaxINIFiles,
				MaxBytesPerFile: defaultFullMaxBytesPerFile,
				MaxNameItems:    defaultFullMaxNameItems,
			},
			CacheSize: defaultScanCacheSize,
		},
		Tokenizer: Tokenizer{
			SkipWords:   append([]string(nil), defaultSkipWords...),
			SkipNumbers: false,
			KeyAllow:    []string{"filename"},
			KeyDeny:     append([]string(nil), defaultKeyDeny...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
