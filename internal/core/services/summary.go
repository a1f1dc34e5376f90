package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driven"
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
	"github.com/custodia-labs/qadigest/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// SummaryService runs the summary pipeline:
// ingest, preprocess, index, retrieve, orchestrate, guardrails and persist.
type SummaryService struct {
	processors driven.PostProcessorFactory
	search     driven.SearchEngine
	store      driven.SummaryStore
	metrics    driven.MetricsRecorder
	log        *logger.Logger
	now        func() time.Time
	newID      func() string
}

// SummaryOption configures a SummaryService.
type SummaryOption func(*SummaryService)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) SummaryOption {
	return func(s *SummaryService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m driven.MetricsRecorder) SummaryOption {
	return func(s *SummaryService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) SummaryOption {
	return func(s *SummaryService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides summary and request id generation.
func WithIDGenerator(gen func() string) SummaryOption {
	return func(s *SummaryService) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewSummaryService creates a new summary service.
func NewSummaryService(
	processors driven.PostProcessorFactory,
	search driven.SearchEngine,
	store driven.SummaryStore,
	opts ...SummaryOption,
) *SummaryService {
	s := &SummaryService{
		processors: processors,
		search:     search,
		store:      store,
		metrics:    driven.NopMetrics{},
		log:        logger.Default(),
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize runs the full pipeline and persists the resulting record.
// A durable store failure does not fail the request.
func (s *SummaryService) Summarize(ctx context.Context, req domain.SummaryRequest) (*domain.SummaryResult, error) {
	started := s.now()

	result, err := s.run(ctx, req, started)
	elapsed := s.now().Sub(started)
	if err != nil {
		s.metrics.PipelineCompleted("error", elapsed)
		s.log.Warn("summary pipeline failed", "error", err, "request_id", req.RequestID)
		return nil, err
	}

	result.Metrics.LatencyMs = elapsed.Milliseconds()
	s.metrics.PipelineCompleted("ok", elapsed)
	s.metrics.SummaryScored(result.Summary.Confidence)
	for _, v := range result.Summary.Guardrails.Violations {
		s.metrics.GuardrailViolated(v.Code)
	}

	s.log.Info("summary created",
		"summary_id", result.Summary.SummaryID,
		"doc_id", result.Summary.DocID,
		"request_id", result.Summary.RequestID,
		"confidence", result.Summary.Confidence,
		"latency_ms", result.Metrics.LatencyMs,
	)
	return result, nil
}

func (s *SummaryService) run(ctx context.Context, req domain.SummaryRequest, started time.Time) (*domain.SummaryResult, error) {
	var diags []domain.Diagnostic
	trace := func(stage, msg string, meta map[string]any) {
		diags = append(diags, domain.Diagnostic{Stage: stage, Message: msg, Metadata: meta})
		s.log.Debug(msg, "stage", stage)
	}

	doc, err := NormaliseDocument(req.Document, started)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	trace(domain.StageIngest, "Document normalised", map[string]any{
		"doc_id":        doc.DocID,
		"title":         doc.Title,
		"contentLength": len(doc.Content),
	})

	chunkCfg := s.processors.Resolve(req.ChunkConfig)
	pipeline, err := s.processors.Build(chunkCfg)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	chunks, err := pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	trace(domain.StagePreprocess, "Document chunked", map[string]any{
		"chunkCount":   len(chunks),
		"chunkSize":    chunkCfg.ChunkSize,
		"chunkOverlap": chunkCfg.ChunkOverlap,
	})

	index := s.search.Index(chunks)
	trace(domain.StageIndex, "Lexical index built", map[string]any{
		"vocabularySize": len(index.Vocabulary),
		"totalTokens":    index.TotalTokens,
	})

	mode, roleOK, lensOK := domain.ResolveMode(req.Mode)
	if !roleOK {
		trace(domain.StageRetrieve, "Unknown role, using "+mode.Role.String(), map[string]any{"requested": req.Mode.Role})
	}
	if !lensOK {
		trace(domain.StageRetrieve, "Unknown lens, using "+mode.Lens.String(), map[string]any{"requested": req.Mode.Lens})
	}
	query := BuildQuery(mode, req.Query, req.Filters)
	plan := mode.Detail.Plan()
	retrieved := s.search.Retrieve(index, query, plan.MaxChunks)
	trace(domain.StageRetrieve, "Chunks retrieved", map[string]any{
		"termCount":      len(query.Terms),
		"maxChunks":      plan.MaxChunks,
		"retrievedCount": len(retrieved),
		"mode":           mode,
	})

	orch := Orchestrate(retrieved, mode)
	trace(domain.StageOrchestrate, "Summary rendered", map[string]any{
		"candidateCount":  orch.Candidates,
		"selectedCount":   len(orch.Selected),
		"targetSentences": plan.TargetSentences,
		"citationCount":   len(orch.Citations),
	})

	report := EvaluateGuardrails(orch.Summary, orch.Citations, mode)
	codes := make([]string, 0, len(report.Violations))
	for _, v := range report.Violations {
		codes = append(codes, v.Code)
	}
	trace(domain.StageGuardrails, "Guardrails evaluated", map[string]any{
		"violations":      codes,
		"citationDensity": report.CitationDensity,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	record := &domain.SummaryRecord{
		SummaryID:  orDefault(req.SummaryID, s.newID()),
		DocID:      doc.DocID,
		Title:      doc.Title,
		Mode:       mode,
		Model:      domain.ModelID,
		PromptHash: PromptHash(doc.DocID, mode),
		Citations:  orch.Citations,
		Confidence: ComputeConfidence(len(orch.Citations), len(report.Violations)),
		CreatedAt:  now,
		UpdatedAt:  now,
		RequestID:  orDefault(req.RequestID, s.newID()),
		Summary:    orch.Summary,
		Guardrails: report,
	}

	persisted := true
	if err := s.store.Save(ctx, record); err != nil {
		persisted = false
		s.metrics.StoreFailed("save")
		s.log.Warn("summary store save failed", "summary_id", record.SummaryID, "error", err)
	}
	trace(domain.StagePersist, "Summary persisted", map[string]any{
		"summary_id": record.SummaryID,
		"confidence": record.Confidence,
		"persisted":  persisted,
	})

	return &domain.SummaryResult{
		Summary:     *record,
		Diagnostics: diags,
		Metrics: domain.SummaryMetrics{
			ChunkCount:      len(chunks),
			RetrievedCount:  len(retrieved),
			CitationDensity: report.CitationDensity,
			Confidence:      record.Confidence,
		},
	}, nil
}

// Get retrieves a persisted summary.
func (s *SummaryService) Get(ctx context.Context, summaryID string) (*domain.SummaryRecord, error) {
	summaryID = strings.TrimSpace(summaryID)
	if summaryID == "" {
		return nil, &domain.ValidationError{Field: "summary_id", Message: "summary_id is required"}
	}

	record, err := s.store.Get(ctx, summaryID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.metrics.StoreFailed("get")
		}
		return nil, fmt.Errorf("get summary %s: %w", summaryID, err)
	}
	return record, nil
}

// PromptHash fingerprints the document and mode a summary was produced for.
func PromptHash(docID string, mode domain.Mode) string {
	sum := sha256.Sum256([]byte(docID + ":" + mode.Role.String() + ":" + mode.Lens.String()))
	return hex.EncodeToString(sum[:])
}
