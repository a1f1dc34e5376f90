// Package handlers holds the gin handlers for the summary API.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/qadigest/internal/adapters/driving/http/middleware"
	"github.com/custodia-labs/qadigest/internal/adapters/driving/http/response"
	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/core/ports/driving"
	"github.com/custodia-labs/qadigest/internal/logger"
)

var errMissingSummaryID = errors.New("summary_id is required")

// SummaryResponse is the body of a successful summary lookup.
type SummaryResponse struct {
	Summary *domain.SummaryRecord `json:"summary"`
}

// SummaryHandler serves the summary endpoints.
type SummaryHandler struct {
	log     *logger.Logger
	service driving.SummaryService
}

// NewSummaryHandler creates a summary handler.
func NewSummaryHandler(log *logger.Logger, service driving.SummaryService) *SummaryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SummaryHandler{
		log:     log.With("handler", "SummaryHandler"),
		service: service,
	}
}

// POST /api/summaries
func (h *SummaryHandler) CreateSummary(c *gin.Context) {
	var req domain.SummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	if strings.TrimSpace(req.RequestID) == "" {
		req.RequestID = c.GetString(middleware.ContextKeyRequestID)
	}

	result, err := h.service.Summarize(c.Request.Context(), req)
	if err != nil {
		h.log.Error("CreateSummary failed", "error", err, "request_id", req.RequestID)
		response.RespondError(c, http.StatusInternalServerError, "summary_failed", err)
		return
	}

	response.RespondAccepted(c, result)
}

// GET /api/summaries?summary_id=...
// id and summaryId are accepted as aliases.
func (h *SummaryHandler) GetSummaryByQuery(c *gin.Context) {
	id := firstQuery(c, "summary_id", "id", "summaryId")
	h.getSummary(c, id)
}

// GET /api/summaries/:id
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	h.getSummary(c, c.Param("id"))
}

func (h *SummaryHandler) getSummary(c *gin.Context, id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_summary_id", errMissingSummaryID)
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		response.RespondOK(c, SummaryResponse{Summary: record})
	case errors.Is(err, domain.ErrNotFound):
		response.RespondError(c, http.StatusNotFound, "summary_not_found", err)
	case errors.Is(err, domain.ErrInvalidInput):
		response.RespondError(c, http.StatusBadRequest, "invalid_summary_id", err)
	default:
		h.log.Error("GetSummary failed", "error", err, "summary_id", id)
		response.RespondError(c, http.StatusInternalServerError, "load_summary_failed", err)
	}
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(c.Query(k)); v != "" {
			return v
		}
	}
	return ""
}
