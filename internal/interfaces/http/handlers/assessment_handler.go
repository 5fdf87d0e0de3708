package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// Assessor is the part of the assessment engine the handler needs.
type Assessor interface {
	Assess(ctx context.Context, in material.InputSpec, src assessment.Source) (*assessment.Assessment, error)
	Corpus() *corpus.Corpus
}

// AssessmentHandler serves the assessment, insights and corpus endpoints.
type AssessmentHandler struct {
	engine      Assessor
	logger      logging.Logger
	maxBodySize int64
}

// NewAssessmentHandler creates a new AssessmentHandler. A maxBodySize of
// zero leaves request bodies unbounded.
func NewAssessmentHandler(engine Assessor, logger logging.Logger, maxBodySize int64) *AssessmentHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &AssessmentHandler{engine: engine, logger: logger, maxBodySize: maxBodySize}
}

// RegisterRoutes mounts the handler under r.
func (h *AssessmentHandler) RegisterRoutes(r chi.Router) {
	r.Post("/assessments", h.Create)
	r.Get("/insights", h.Insights)
	r.Get("/corpus", h.Corpus)
}

// Create handles POST /api/v1/assessments.
func (h *AssessmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req dto.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("rejecting undecodable assessment request", logging.Err(err))
		writeError(w, r, http.StatusBadRequest,
			errors.Wrap(err, errors.ErrCodeBadRequest, "invalid request body").WithDetail(err.Error()))
		return
	}
	// All four inputs are required; a partial request is a client error.
	if err := req.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	src, err := assessment.ParseSource(req.Source)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	a, err := h.engine.Assess(r.Context(), assessment.ToInput(req), src)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.Response())
}

// Insights handles GET /api/v1/insights?materialType=. Without a known
// material type only the assumptions and limitations are returned.
func (h *AssessmentHandler) Insights(w http.ResponseWriter, r *http.Request) {
	mt := material.ParseMaterialType(r.URL.Query().Get("materialType"))
	writeJSON(w, http.StatusOK, assessment.InsightsResponse(mt))
}

// Corpus handles GET /api/v1/corpus.
func (h *AssessmentHandler) Corpus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, assessment.Summary(h.engine.Corpus()))
}

//Personal.AI order the ending
