package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	ModsDir     string `toml:"mods_dir"`
	CatalogPath string `toml:"catalog_path"`
	DataDir     string `toml:"data_dir"`
	LogDir      string `toml:"log_dir"`
}

// Matching carries the scoring calibration values. The values are tuned
// per game; the acceptance logic itself lives in the match package.
type Matching struct {
	HashBaseScore              float64 `toml:"hash_base_score"`
	HashRarityBonus            float64 `toml:"hash_rarity_bonus"`
	AliasStrictBonus           float64 `toml:"alias_strict_bonus"`
	TokenOverlapWeight         float64 `toml:"token_overlap_weight"`
	StructuralTokenBonus       float64 `toml:"structural_token_bonus"`
	StructuralPrimaryMinTokens int     `toml:"structural_primary_min_tokens"`
	NameSupportCap             float64 `toml:"name_support_cap"`
	NegativePenalty            float64 `toml:"negative_penalty"`
	TypeMismatchPenalty        float64 `toml:"type_mismatch_penalty"`
	AIRerankWeight             float64 `toml:"ai_rerank_weight"`
	MaxScore                   float64 `toml:"max_score"`
	AcceptThreshold            float64 `toml:"accept_threshold"`
	AcceptMargin               float64 `toml:"accept_margin"`
	ReviewFloor                float64 `toml:"review_floor"`
	UltraCloseDelta            float64 `toml:"ultra_close_delta"`
	TopK                       int     `toml:"top_k"`
	MaxReasons                 int     `toml:"max_reasons"`
	MaxEvidenceItems           int     `toml:"max_evidence_items"`
}

// ScanBudget bounds one scan pass over a mod folder. Budgets are the
// engine's cancellation mechanism: pathological folders run out of budget
// instead of running forever.
type ScanBudget struct {
	MaxINIFiles     int   `toml:"max_ini_files"`
	MaxBytesPerFile int64 `toml:"max_bytes_per_file"`
	MaxNameItems    int   `toml:"max_name_items"`
}

// Scan contains the per-mode budgets and the signal cache size.
type Scan struct {
	Quick     ScanBudget `toml:"quick"`
	Full      ScanBudget `toml:"full"`
	CacheSize int        `toml:"cache_size"`
}

// Tokenizer carries the per-game vocabulary for normalization and
// structural tokenization.
type Tokenizer struct {
	SkipWords         []string `toml:"skip_words"`
	SkipNumbers       bool     `toml:"skip_numbers"`
	SectionAllowShort []string `toml:"section_allow_short"`
	KeyAllow          []string `toml:"key_allow"`
	KeyDeny           []string `toml:"key_deny"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for modscout.
//
// Configuration sections by subsystem:
//   - Paths: mods root, catalog file, data and log directories
//   - Matching: scoring calibration and acceptance thresholds
//   - Scan: quick/full scan budgets and signal cache size
//   - Tokenizer: per-game skip-words and key allow/deny lists
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Matching  Matching  `toml:"matching"`
	Scan      Scan      `toml:"scan"`
	Tokenizer Tokenizer `toml:"tokenizer"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/modscout/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file existed at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("modscout.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// EnsureDirectories creates the directories modscout writes to. The mods
// directory is the user's own and is never created here.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
