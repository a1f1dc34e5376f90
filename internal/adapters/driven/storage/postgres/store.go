// Package postgres provides a gorm-backed durable summary store for Postgres.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.SummaryStore = (*Store)(nil)

// upsertColumns are overwritten on conflict. summary_id, doc_id and created_at never change.
var upsertColumns = []string{
	"title", "mode", "model", "prompt_hash", "citations",
	"confidence", "request_id", "summary", "guardrails", "updated_at",
}

// summaryRow is the summaries table row.
type summaryRow struct {
	SummaryID  string         `gorm:"column:summary_id;primaryKey"`
	DocID      string         `gorm:"column:doc_id;not null;index"`
	Title      string         `gorm:"column:title;not null;default:''"`
	Mode       datatypes.JSON `gorm:"column:mode;type:jsonb"`
	Model      string         `gorm:"column:model"`
	PromptHash string         `gorm:"column:prompt_hash"`
	Citations  datatypes.JSON `gorm:"column:citations;type:jsonb"`
	Confidence float64        `gorm:"column:confidence;type:numeric(4,2)"`
	RequestID  string         `gorm:"column:request_id"`
	Summary    string         `gorm:"column:summary;type:text"`
	Guardrails datatypes.JSON `gorm:"column:guardrails;type:jsonb"`
	CreatedAt  time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;not null"`
}

// TableName returns the table name.
func (summaryRow) TableName() string { return "summaries" }

// Store persists summaries to Postgres.
// Schema creation is attempted once per Store; a failure is logged and not retried.
type Store struct {
	db  *gorm.DB
	log *logger.Logger

	schemaOnce sync.Once
}

// Open connects to Postgres using dsn.
func Open(dsn string, logg *logger.Logger) (*Store, error) {
	gormLog := gormLogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, classify("connect", err)
	}
	return New(db, logg), nil
}

// New wraps an existing gorm connection.
func New(db *gorm.DB, logg *logger.Logger) *Store {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{db: db, log: logg.With("store", "postgres")}
}

// ensureSchema creates the summaries table on first use.
// A failure is only logged; the query that follows returns the classified error.
func (s *Store) ensureSchema(ctx context.Context) {
	s.schemaOnce.Do(func() {
		if err := s.db.WithContext(ctx).AutoMigrate(&summaryRow{}); err != nil {
			s.log.Warn("summaries schema creation failed", "error", err, "class", classOf(err))
		}
	})
}

// Save upserts a summary. doc_id and created_at keep their first-write values
// and record is updated to carry them.
func (s *Store) Save(ctx context.Context, record *domain.SummaryRecord) error {
	s.ensureSchema(ctx)

	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}

	row, err := toRow(record)
	if err != nil {
		return err
	}

	if err := upsert(s.db.WithContext(ctx), row).Error; err != nil {
		return classify("save", err)
	}

	record.DocID = row.DocID
	record.CreatedAt = row.CreatedAt
	return nil
}

// upsert builds the insert-or-update statement for a row.
func upsert(db *gorm.DB, row *summaryRow) *gorm.DB {
	return db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "summary_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		},
		clause.Returning{Columns: []clause.Column{{Name: "doc_id"}, {Name: "created_at"}}},
	).Create(row)
}

// Get retrieves a summary by ID.
func (s *Store) Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	s.ensureSchema(ctx)

	var row summaryRow
	err := s.db.WithContext(ctx).Where("summary_id = ?", summaryID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, classify("get", err)
	}
	return fromRow(&row)
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRow(rec *domain.SummaryRecord) (*summaryRow, error) {
	mode, err := json.Marshal(rec.Mode)
	if err != nil {
		return nil, fmt.Errorf("marshalling mode: %w", err)
	}
	citations := rec.Citations
	if citations == nil {
		citations = []domain.Citation{}
	}
	citationsJSON, err := json.Marshal(citations)
	if err != nil {
		return nil, fmt.Errorf("marshalling citations: %w", err)
	}
	guardrails, err := json.Marshal(rec.Guardrails)
	if err != nil {
		return nil, fmt.Errorf("marshalling guardrails: %w", err)
	}

	return &summaryRow{
		SummaryID:  rec.SummaryID,
		DocID:      rec.DocID,
		Title:      rec.Title,
		Mode:       datatypes.JSON(mode),
		Model:      rec.Model,
		PromptHash: rec.PromptHash,
		Citations:  datatypes.JSON(citationsJSON),
		Confidence: rec.Confidence,
		RequestID:  rec.RequestID,
		Summary:    rec.Summary,
		Guardrails: datatypes.JSON(guardrails),
		CreatedAt:  rec.CreatedAt.UTC(),
		UpdatedAt:  rec.UpdatedAt.UTC(),
	}, nil
}

func fromRow(row *summaryRow) (*domain.SummaryRecord, error) {
	rec := &domain.SummaryRecord{
		SummaryID:  row.SummaryID,
		DocID:      row.DocID,
		Title:      row.Title,
		Model:      row.Model,
		PromptHash: row.PromptHash,
		Confidence: row.Confidence,
		RequestID:  row.RequestID,
		Summary:    row.Summary,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if len(row.Mode) > 0 {
		if err := json.Unmarshal(row.Mode, &rec.Mode); err != nil {
			return nil, fmt.Errorf("unmarshaling mode: %w", err)
		}
	}
	if len(row.Citations) > 0 {
		if err := json.Unmarshal(row.Citations, &rec.Citations); err != nil {
			return nil, fmt.Errorf("unmarshaling citations: %w", err)
		}
	}
	if len(row.Guardrails) > 0 {
		if err := json.Unmarshal(row.Guardrails, &rec.Guardrails); err != nil {
			return nil, fmt.Errorf("unmarshaling guardrails: %w", err)
		}
	}
	return rec, nil
}
