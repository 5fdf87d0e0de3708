package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/corpus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/prometheus"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http/handlers"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http/middleware"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

func newTestRouter(t *testing.T, engine *assessment.Engine) http.Handler {
	t.Helper()
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "mfr_test"}, logging.NewNopLogger())
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	logCfg := middleware.DefaultLoggingConfig()
	logCfg.Observer = metrics
	return NewRouter(RouterConfig{
		AssessmentHandler: handlers.NewAssessmentHandler(engine, nil, 1<<20),
		HealthHandler:     handlers.NewHealthHandler("test", handlers.CorpusCheck(engine.Ready)).WithObserver(metrics),
		CORS:              middleware.CORS(middleware.DefaultCORSConfig("http://localhost:5173")),
		Logging:           middleware.RequestLogging(logging.NewNopLogger(), logCfg),
		MetricsHandler:    collector.Handler(),
	})
}

func oneRecordCorpus() *corpus.Corpus {
	return corpus.New([]corpus.ReferenceRecord{
		{MaterialName: "PMMA", MaterialType: material.Polymer, HeatFlux: 500, TimeToIgn: 30, FlowFactor: 0.85, RiskScore: 66},
	}, corpus.Bounds{})
}

func TestNewRouter_Routes(t *testing.T) {
	engine := assessment.NewEngine(oneRecordCorpus())
	r := newTestRouter(t, engine)

	tests := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK},
		{http.MethodGet, "/readyz", "", http.StatusOK},
		{http.MethodGet, "/api/v1/insights?materialType=generic", "", http.StatusOK},
		{http.MethodGet, "/api/v1/corpus", "", http.StatusOK},
		{http.MethodPost, "/api/v1/assessments", `{"materialType":"polymer","temperature":500,"exposureTime":30,"environment":"open-air"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/assessments", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/materials", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestNewRouter_ReadyzFollowsCorpus(t *testing.T) {
	engine := assessment.NewEngine(nil)
	r := newTestRouter(t, engine)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	engine.SwapCorpus(oneRecordCorpus())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_ErrorCarriesRequestID(t *testing.T) {
	r := newTestRouter(t, assessment.NewEngine(nil))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments", strings.NewReader(`{}`))
	req.Header.Set("X-Request-Id", "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "req-42", e.RequestID)
}

func TestNewRouter_MetricsExposed(t *testing.T) {
	r := newTestRouter(t, assessment.NewEngine(oneRecordCorpus()))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/corpus", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `mfr_test_http_requests_total{method="GET",path="/api/v1/corpus",status_code="200"} 1`)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, assessment.NewEngine(nil))
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/assessments", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_RecoversPanics(t *testing.T) {
	r := NewRouter(RouterConfig{MetricsHandler: http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), MetricsPath: "/boom"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewRouter_NilHandlersNoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		r := NewRouter(RouterConfig{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}


//Personal.AI order the ending
