package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/application/assessment"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/testutil"
	dto "github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

const corpusDoc = `{
  "minmax": {"HEAT FLUX": [0, 1000], "TIME TO IGN": [0, 60], "FLOW FACTOR": [0.85, 1.15]},
  "records": [
    {"materialName": "A", "materialType": "polymer", "heatFlux": 500, "timeToIgn": 30, "flowFactor": 0.85, "riskScore": 66},
    {"materialName": "B", "materialType": "generic", "heatFlux": 500, "timeToIgn": 30, "flowFactor": 1.15, "riskScore": 40}
  ]
}`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Corpus.Source = testutil.WriteFile(t, "corpus.json", corpusDoc)
	cfg.Metrics.Namespace = "mfr_app_test"
	return cfg
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/assessments", strings.NewReader(body)))
	return w
}

const scenarioBody = `{"materialType":"polymer","temperature":500,"exposureTime":30,"environment":"open-air"}`

func TestNew_LocalWithFileCorpus(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Engine.Ready())
	assert.Equal(t, 2, a.Engine.Corpus().Len())
	assert.Equal(t, assessment.SourceLocal, a.Engine.DefaultSource())
	assert.False(t, a.Engine.RemoteEnabled())
	require.NotNil(t, a.Metrics)

	h := a.Handler()
	w := post(t, h, scenarioBody)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 66, resp.Result.RiskScore)
	assert.Len(t, resp.Result.ComparableMaterials, 2)

	m := httptest.NewRecorder()
	h.ServeHTTP(m, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, m.Body.String(), `mfr_app_test_assessments_total{risk_class="High",source="local"} 1`)
	assert.Contains(t, m.Body.String(), "mfr_app_test_corpus_records 2")
}

func TestNew_MissingCorpusDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus.Source = filepath.Join(t.TempDir(), "absent.json")
	cfg.Metrics.Enabled = false

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.False(t, a.Engine.Ready())
	assert.Nil(t, a.Metrics)

	h := a.Handler()
	w := post(t, h, scenarioBody)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Caution", resp.Result.ConfidenceLevel)
	assert.Empty(t, resp.Result.ComparableMaterials)

	r := httptest.NewRecorder()
	h.ServeHTTP(r, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, r.Code)

	m := httptest.NewRecorder()
	h.ServeHTTP(m, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, m.Code)
}

func TestNew_NoCorpusConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus.Source = ""
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.CorpusSource)
	assert.False(t, a.Engine.Ready())
}

func TestNew_ObjectStoreWithoutEndpointDegrades(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus.Source = "s3://mfr-corpus/reference.json"
	cfg.MinIO.Endpoint = ""

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.CorpusSource)
	assert.False(t, a.Engine.Ready())
}

func TestNew_RemotePredictor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		_, _ = w.Write([]byte(`{"riskScore":30,"riskClass":"Low","resistanceIndex":76,"interpretation":"remote"}`))
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Predictor.Enabled = true
	cfg.Predictor.BaseURL = srv.URL

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.True(t, a.Engine.RemoteEnabled())
	assert.Equal(t, assessment.SourceRemote, a.Engine.DefaultSource())

	w := post(t, a.Handler(), scenarioBody)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "remote", resp.Source)
	assert.Equal(t, 30, resp.Result.RiskScore)
	assert.Equal(t, "remote", resp.Result.Interpretation)
}

func TestNew_RemotePredictorDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Predictor.Enabled = true
	cfg.Predictor.BaseURL = srv.URL

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	w := post(t, a.Handler(), scenarioBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "RISK_002", e.Code)
	assert.True(t, e.Transient)
}

func TestNew_CacheWithUnreachableRedisFails(t *testing.T) {
	cfg := testConfig(t)
	cfg.Predictor.Enabled = true
	cfg.Predictor.BaseURL = "http://127.0.0.1:1"
	cfg.Predictor.CacheEnabled = true
	cfg.Redis.Addr = "127.0.0.1:1"
	cfg.Redis.DialTimeout = 100 * time.Millisecond

	_, err := New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = 0
	cfg.Server.GRPCPort = 0
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

//Personal.AI order the ending
