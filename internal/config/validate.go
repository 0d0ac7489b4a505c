package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if err := c.Paths.validate(); err != nil {
		return err
	}
	if err := c.Matching.validate(); err != nil {
		return err
	}
	if err := c.Scan.validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return nil
}

func (p Paths) validate() error {
	if strings.TrimSpace(p.CatalogPath) == "" {
		return fmt.Errorf("paths.catalog_path is required")
	}
	if strings.TrimSpace(p.DataDir) == "" {
		return fmt.Errorf("paths.data_dir is required")
	}
	return nil
}

func (m Matching) validate() error {
	if m.AcceptThreshold <= 0 {
		return fmt.Errorf("matching.accept_threshold must be positive")
	}
	if m.AcceptMargin < 0 {
		return fmt.Errorf("matching.accept_margin cannot be negative")
	}
	if m.ReviewFloor < 0 {
		return fmt.Errorf("matching.review_floor cannot be negative")
	}
	if m.ReviewFloor > m.AcceptThreshold {
		return fmt.Errorf("matching.review_floor cannot exceed matching.accept_threshold")
	}
	if m.MaxScore <= 0 {
		return fmt.Errorf("matching.max_score must be positive")
	}
	if m.MaxScore < m.AcceptThreshold {
		return fmt.Errorf("matching.max_score cannot be below matching.accept_threshold")
	}
	if m.UltraCloseDelta < 0 {
		return fmt.Errorf("matching.ultra_close_delta cannot be negative")
	}
	if m.TopK <= 0 {
		return fmt.Errorf("matching.top_k must be positive")
	}
	if m.MaxReasons <= 0 {
		return fmt.Errorf("matching.max_reasons must be positive")
	}
	if m.MaxEvidenceItems <= 0 {
		return fmt.Errorf("matching.max_evidence_items must be positive")
	}
	if m.StructuralPrimaryMinTokens <= 0 {
		return fmt.Errorf("matching.structural_primary_min_tokens must be positive")
	}
	return nil
}

func (s Scan) validate() error {
	if err := s.Quick.validate("scan.quick"); err != nil {
		return err
	}
	if err := s.Full.validate("scan.full"); err != nil {
		return err
	}
	if s.CacheSize <= 0 {
		return fmt.Errorf("scan.cache_size must be positive")
	}
	return nil
}

func (b ScanBudget) validate(section string) error {
	if b.MaxINIFiles <= 0 {
		return fmt.Errorf("%s.max_ini_files must be positive", section)
	}
	if b.MaxBytesPerFile <= 0 {
		return fmt.Errorf("%s.max_bytes_per_file must be positive", section)
	}
	if b.MaxNameItems <= 0 {
		return fmt.Errorf("%s.max_name_items must be positive", section)
	}
	return nil
}

func (l Logging) validate() error {
	switch l.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", l.Format)
	}
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", l.Level)
	}
	return nil
}
