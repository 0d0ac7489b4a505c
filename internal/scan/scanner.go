package scan

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"modscout/internal/iniscan"
	"modscout/internal/logging"
	"modscout/internal/match"
	"modscout/internal/textnorm"
)

// Budget bounds one scan pass over a mod folder.
type Budget struct {
	// MaxINIFiles caps how many INI files are read.
	MaxINIFiles int
	// MaxBytesPerFile caps how much of each INI file is read.
	MaxBytesPerFile int64
	// MaxNameItems caps how many nested file and folder names are
	// tokenized.
	MaxNameItems int
}

// Options configures a Scanner.
type Options struct {
	Quick     Budget
	Full      Budget
	Tokenizer iniscan.TokenizerConfig
	SkipWords textnorm.TokenSet
	// SkipNumbers drops purely numeric tokens from name buckets.
	SkipNumbers bool
	// CacheSize is the number of scanned folders kept in memory.
	CacheSize int
	Logger    *slog.Logger
}

type cacheKey struct {
	path    string
	mode    match.Mode
	modTime int64
}

// Scanner walks mod folders and produces match signals.
type Scanner struct {
	quick       Budget
	full        Budget
	tokenizer   iniscan.TokenizerConfig
	skipWords   textnorm.TokenSet
	skipNumbers bool
	cache       *lru.Cache[cacheKey, match.Signals]
	logger      *slog.Logger
}

// NewScanner builds a Scanner from options. A zero or negative cache size
// disables caching.
func NewScanner(opts Options) (*Scanner, error) {
	s := &Scanner{
		quick:       opts.Quick,
		full:        opts.Full,
		tokenizer:   opts.Tokenizer,
		skipWords:   opts.SkipWords,
		skipNumbers: opts.SkipNumbers,
		logger:      logging.NewComponentLogger(opts.Logger, "scan"),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, match.Signals](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("create signal cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// Collect scans folder under the budget selected by mode and returns the
// observed signals. Individual unreadable files are skipped; only a missing
// or unreadable folder is an error.
func (s *Scanner) Collect(ctx context.Context, folder string, mode match.Mode) (match.Signals, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return match.Signals{}, fmt.Errorf("stat mod folder: %w", err)
	}
	if !info.IsDir() {
		return match.Signals{}, fmt.Errorf("%s is not a directory", folder)
	}

	key := cacheKey{path: folder, mode: mode, modTime: info.ModTime().UnixNano()}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	signals, err := s.collect(ctx, folder, mode)
	if err != nil {
		return match.Signals{}, err
	}
	if s.cache != nil {
		s.cache.Add(key, signals)
	}
	s.logger.Debug("folder scanned",
		logging.String("folder", folder),
		logging.String("mode", string(mode)),
		logging.Int("files_scanned", signals.FilesScanned),
		logging.Int("names_scanned", signals.NamesScanned),
		logging.Int("hashes", len(signals.Hashes)))
	return signals, nil
}

func (s *Scanner) collect(ctx context.Context, folder string, mode match.Mode) (match.Signals, error) {
	budget := s.full
	if mode == match.ModeQuick {
		budget = s.quick
	}

	signals := match.Signals{
		FolderTokens:  s.nameTokens(filepath.Base(folder)),
		DeepTokens:    make(textnorm.TokenSet),
		SectionTokens: make(textnorm.TokenSet),
		ContentTokens: make(textnorm.TokenSet),
		Mode:          mode,
	}
	seenHashes := make(map[string]struct{})

	walkErr := filepath.WalkDir(folder, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			s.logger.Debug("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == folder {
			return nil
		}

		if signals.NamesScanned < budget.MaxNameItems {
			name := entry.Name()
			if !entry.IsDir() {
				name = strings.TrimSuffix(name, filepath.Ext(name))
			}
			signals.DeepTokens.AddAll(s.nameTokens(name))
			signals.NamesScanned++
		}

		if !entry.IsDir() && isINI(entry.Name()) && signals.FilesScanned < budget.MaxINIFiles {
			s.scanINI(path, budget, &signals, seenHashes)
		}

		if signals.NamesScanned >= budget.MaxNameItems && signals.FilesScanned >= budget.MaxINIFiles {
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return match.Signals{}, fmt.Errorf("walk mod folder: %w", walkErr)
	}
	return signals, nil
}

func (s *Scanner) scanINI(path string, budget Budget, signals *match.Signals, seenHashes map[string]struct{}) {
	file, err := os.Open(path)
	if err != nil {
		s.logger.Debug("skipping unreadable ini", logging.String("path", path), logging.Error(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, budget.MaxBytesPerFile))
	if err != nil {
		s.logger.Debug("skipping unreadable ini", logging.String("path", path), logging.Error(err))
		return
	}
	signals.FilesScanned++

	text := iniscan.Decode(data)
	for _, hash := range iniscan.ExtractHashes(text) {
		if _, dup := seenHashes[hash]; dup {
			continue
		}
		seenHashes[hash] = struct{}{}
		signals.Hashes = append(signals.Hashes, hash)
	}
	structural := iniscan.ExtractStructuralTokens(text, s.tokenizer)
	signals.SectionTokens.AddAll(structural.Sections)
	signals.ContentTokens.AddAll(structural.Keys)
	signals.ContentTokens.AddAll(structural.Paths)
}

// nameTokens tokenizes one file or folder name, applying skip-words and the
// optional digit filter.
func (s *Scanner) nameTokens(name string) textnorm.TokenSet {
	normalized := textnorm.Normalize(name, s.skipNumbers, s.skipWords)
	if normalized == "" {
		return make(textnorm.TokenSet)
	}
	return textnorm.NewTokenSet(strings.Fields(normalized)...)
}

func isINI(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".ini")
}
