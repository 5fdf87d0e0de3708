package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/types/assessment"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithRetryWait(time.Millisecond, 2*time.Millisecond)}, opts...)
	client, err := NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client
}

type testLogger struct {
	mu      sync.Mutex
	lastMsg string
	count   int32
}

func (l *testLogger) Debugf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) Infof(format string, args ...interface{})  { l.log(format, args...) }
func (l *testLogger) Errorf(format string, args ...interface{}) { l.log(format, args...) }
func (l *testLogger) log(format string, args ...interface{}) {
	atomic.AddInt32(&l.count, 1)
	l.mu.Lock()
	l.lastMsg = fmt.Sprintf(format, args...)
	l.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---------------------------------------------------------------------------
// Constructor Tests
// ---------------------------------------------------------------------------

func TestNewClient_Success(t *testing.T) {
	c, err := NewClient("http://localhost:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
	assert.Equal(t, 2, c.retryMax)
	assert.Contains(t, c.userAgent, "mfr-go-sdk/")
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, u := range []string{"", "ftp://invalid", "invalid-url"} {
		_, err := NewClient(u)
		assert.True(t, errors.IsCode(err, errors.ErrCodeValidation), u)
	}
}

func TestClient_Assessments_LazyInit(t *testing.T) {
	c, err := NewClient("http://localhost")
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*AssessmentsClient, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Assessments()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

// ---------------------------------------------------------------------------
// Transport Tests
// ---------------------------------------------------------------------------

func TestClient_Do_RequestHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "mfr-go-sdk/")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.WriteHeader(http.StatusOK)
	}, WithAPIKey("secret"))

	require.NoError(t, c.Health(context.Background()))
}

func TestClient_Do_NoAuthorizationWithoutKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
	})
	require.NoError(t, c.Health(context.Background()))
}

func TestClient_Do_4xxNoRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusBadRequest, assessment.ErrorResponse{Code: "COMMON_010", Message: "missing required fields", Detail: "temperature"})
	})

	err := c.get(context.Background(), "/api/v1/assessments", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsBadRequest())
	assert.Equal(t, "COMMON_010", apiErr.Code)
	assert.Equal(t, "temperature", apiErr.Detail)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_Do_5xxRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.Health(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_Do_5xxRetryExhausted(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusServiceUnavailable, assessment.ErrorResponse{Code: "RISK_001", Message: "remote predictor unreachable", Transient: true})
	}, WithRetryMax(1))

	err := c.Health(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTransient())
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_Do_429RetryAfter(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	start := time.Now()
	require.NoError(t, c.Health(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestClient_Do_PlainTextError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	})

	err := c.get(context.Background(), "/nope", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
	assert.Equal(t, "not here", apiErr.Message)
}

func TestClient_Do_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	logger := &testLogger{}
	c, err := NewClient(server.URL, WithRetryMax(1), WithRetryWait(time.Millisecond, time.Millisecond), WithLogger(logger))
	require.NoError(t, err)

	assert.Error(t, c.Health(context.Background()))
	assert.Greater(t, atomic.LoadInt32(&logger.count), int32(0))
}

func TestClient_Do_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, c.Health(ctx))
}

func TestAPIError_Error(t *testing.T) {
	e := &APIError{StatusCode: 502, Code: "RISK_002", Message: "bad status", Detail: "HTTP 500", RequestID: "r1"}
	assert.Equal(t, "mfr: RISK_002 (HTTP 502): bad status: HTTP 500 [request_id=r1]", e.Error())
}

//Personal.AI order the ending
