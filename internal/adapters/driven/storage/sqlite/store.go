package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/qadigest/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
)

// timeLayout is how timestamps are stored in TEXT columns.
const timeLayout = time.RFC3339Nano

// Store is a SQLite-based storage for summary records.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.qadigest/data/summaries.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".qadigest", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "summaries.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SummaryStore returns a SummaryStore interface backed by this store.
func (s *Store) SummaryStore() driven.SummaryStore {
	return &summaryStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_summaries.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Summary Store ====================

// summaryStore implements driven.SummaryStore.
type summaryStore struct {
	store *Store
}

var _ driven.SummaryStore = (*summaryStore)(nil)

// Save upserts a summary. created_at and doc_id keep their first-write values
// and record is updated to carry them.
func (s *summaryStore) Save(ctx context.Context, record *domain.SummaryRecord) error {
	modeJSON, err := json.Marshal(record.Mode)
	if err != nil {
		return fmt.Errorf("marshalling mode: %w", err)
	}
	citationsJSON, err := json.Marshal(nonNilCitations(record.Citations))
	if err != nil {
		return fmt.Errorf("marshalling citations: %w", err)
	}
	guardrailsJSON, err := json.Marshal(record.Guardrails)
	if err != nil {
		return fmt.Errorf("marshalling guardrails: %w", err)
	}

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	var docID, createdAt string
	err = s.store.db.QueryRowContext(ctx, `
		INSERT INTO summaries (summary_id, doc_id, title, mode, model, prompt_hash, citations,
			confidence, request_id, summary, guardrails, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(summary_id) DO UPDATE SET
			title = excluded.title,
			mode = excluded.mode,
			model = excluded.model,
			prompt_hash = excluded.prompt_hash,
			citations = excluded.citations,
			confidence = excluded.confidence,
			request_id = excluded.request_id,
			summary = excluded.summary,
			guardrails = excluded.guardrails,
			updated_at = excluded.updated_at
		RETURNING doc_id, created_at
	`, record.SummaryID, record.DocID, record.Title, string(modeJSON), record.Model, record.PromptHash,
		string(citationsJSON), record.Confidence, record.RequestID, record.Summary, string(guardrailsJSON),
		record.CreatedAt.UTC().Format(timeLayout), record.UpdatedAt.UTC().Format(timeLayout),
	).Scan(&docID, &createdAt)
	if err != nil {
		return fmt.Errorf("saving summary: %w", err)
	}

	record.DocID = docID
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		record.CreatedAt = t
	}
	return nil
}

// Get retrieves a summary by ID.
func (s *summaryStore) Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT summary_id, doc_id, title, mode, model, prompt_hash, citations,
			confidence, request_id, summary, guardrails, created_at, updated_at
		FROM summaries WHERE summary_id = ?
	`, summaryID)
	return scanSummary(row)
}

// Close closes the underlying database.
func (s *summaryStore) Close() error {
	return s.store.Close()
}

func scanSummary(row *sql.Row) (*domain.SummaryRecord, error) {
	var rec domain.SummaryRecord
	var modeJSON, citationsJSON, guardrailsJSON, createdAt, updatedAt string
	if err := row.Scan(&rec.SummaryID, &rec.DocID, &rec.Title, &modeJSON, &rec.Model, &rec.PromptHash,
		&citationsJSON, &rec.Confidence, &rec.RequestID, &rec.Summary, &guardrailsJSON,
		&createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning summary: %w", err)
	}

	if err := json.Unmarshal([]byte(modeJSON), &rec.Mode); err != nil {
		return nil, fmt.Errorf("unmarshaling mode: %w", err)
	}
	if err := json.Unmarshal([]byte(citationsJSON), &rec.Citations); err != nil {
		return nil, fmt.Errorf("unmarshaling citations: %w", err)
	}
	if err := json.Unmarshal([]byte(guardrailsJSON), &rec.Guardrails); err != nil {
		return nil, fmt.Errorf("unmarshaling guardrails: %w", err)
	}

	var err error
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &rec, nil
}

func nonNilCitations(c []domain.Citation) []domain.Citation {
	if c == nil {
		return []domain.Citation{}
	}
	return c
}
