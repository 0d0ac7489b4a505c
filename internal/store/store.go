package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"modscout/internal/config"
	"modscout/internal/match"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users clear the database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by a different
// modscout version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no record matched the lookup.
var ErrNotFound = errors.New("record not found")

// Record is one persisted match attempt. The headline columns are
// denormalized from the result for listing; ResultJSON holds the full
// serialized result.
type Record struct {
	ID         int64
	AttemptID  string
	Folder     string
	Status     match.Status
	EntityName string
	EntityType string
	Score      float64
	Confidence match.Confidence
	Mode       match.Mode
	Summary    string
	ResultJSON string
	CreatedAt  time.Time
}

// Result unmarshals the stored full result.
func (r Record) Result() (match.Result, error) {
	var result match.Result
	if err := json.Unmarshal([]byte(r.ResultJSON), &result); err != nil {
		return match.Result{}, fmt.Errorf("unmarshal stored result: %w", err)
	}
	return result, nil
}

// Store manages result persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the results database under the data
// directory and verifies the schema version. The returned store holds a
// file lock until Close.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "results.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire results lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another modscout instance holds the results database")
	}

	dbPath := filepath.Join(cfg.Paths.DataDir, "results.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database and releases the file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'modscout results clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// SaveResult records one match attempt for folder and returns the stored
// record.
func (s *Store) SaveResult(ctx context.Context, folder string, result match.Result) (*Record, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	attemptID := uuid.NewString()
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	var entityName, entityType string
	var score float64
	var confidence match.Confidence
	if result.Best != nil {
		entityName = result.Best.Name
		entityType = result.Best.Type
		score = result.Best.Score
		confidence = result.Best.Confidence
	} else if len(result.Candidates) > 0 {
		entityName = result.Candidates[0].Name
		entityType = result.Candidates[0].Type
		score = result.Candidates[0].Score
		confidence = result.Candidates[0].Confidence
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO match_results (
            attempt_id, folder, status, entity_name, entity_type,
            score, confidence, mode, summary, result_json, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attemptID,
		folder,
		string(result.Status),
		entityName,
		entityType,
		score,
		string(confidence),
		string(result.Mode),
		result.Summary,
		string(resultJSON),
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

const recordColumns = `id, attempt_id, folder, status, entity_name, entity_type,
    score, confidence, mode, summary, result_json, created_at`

func scanRecord(row interface{ Scan(...any) error }) (*Record, error) {
	var rec Record
	var entityName, entityType, confidence, mode, summary sql.NullString
	var createdAt string
	err := row.Scan(
		&rec.ID, &rec.AttemptID, &rec.Folder, (*string)(&rec.Status),
		&entityName, &entityType, &rec.Score, &confidence, &mode,
		&summary, &rec.ResultJSON, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan record: %w", err)
	}
	rec.EntityName = entityName.String
	rec.EntityType = entityType.String
	rec.Confidence = match.Confidence(confidence.String)
	rec.Mode = match.Mode(mode.String)
	rec.Summary = summary.String
	if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		rec.CreatedAt = parsed
	}
	return &rec, nil
}

// GetByID returns one record by row ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM match_results WHERE id = ?", id)
	return scanRecord(row)
}

// GetByAttemptID returns one record by attempt ID.
func (s *Store) GetByAttemptID(ctx context.Context, attemptID string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM match_results WHERE attempt_id = ?", attemptID)
	return scanRecord(row)
}

// Latest returns the most recent record for folder.
func (s *Store) Latest(ctx context.Context, folder string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM match_results WHERE folder = ? ORDER BY id DESC LIMIT 1", folder)
	return scanRecord(row)
}

// List returns records newest first, up to limit. A non-positive limit
// returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := "SELECT " + recordColumns + " FROM match_results ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return records, nil
}

// Clear deletes every stored result and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM match_results")
	if err != nil {
		return 0, fmt.Errorf("clear results: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return deleted, nil
}
