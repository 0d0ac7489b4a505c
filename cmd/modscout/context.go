package main

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"modscout/internal/config"
	"modscout/internal/logging"
	"modscout/internal/match"
	"modscout/internal/scan"
	"modscout/internal/store"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		paths := []string{"stderr"}
		if cfg.Paths.LogDir != "" {
			paths = append(paths, filepath.Join(cfg.Paths.LogDir, "modscout.log"))
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: paths,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// newMatcher loads the catalog and builds the match engine from the
// configured policy.
func (c *commandContext) newMatcher() (*match.Matcher, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	entities, err := c.loadCatalog()
	if err != nil {
		return nil, err
	}
	return match.NewMatcher(match.NewIndex(entities), cfg.MatchPolicy(), logger), nil
}

func (c *commandContext) newScanner() (*scan.Scanner, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	return scan.NewScanner(scan.Options{
		Quick: scan.Budget{
			MaxINIFiles:     cfg.Scan.Quick.MaxINIFiles,
			MaxBytesPerFile: cfg.Scan.Quick.MaxBytesPerFile,
			MaxNameItems:    cfg.Scan.Quick.MaxNameItems,
		},
		Full: scan.Budget{
			MaxINIFiles:     cfg.Scan.Full.MaxINIFiles,
			MaxBytesPerFile: cfg.Scan.Full.MaxBytesPerFile,
			MaxNameItems:    cfg.Scan.Full.MaxNameItems,
		},
		Tokenizer:   cfg.TokenizerConfig(),
		SkipWords:   cfg.SkipWordSet(),
		SkipNumbers: cfg.Tokenizer.SkipNumbers,
		CacheSize:   cfg.Scan.CacheSize,
		Logger:      logger,
	})
}

func (c *commandContext) openStore() (*store.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
