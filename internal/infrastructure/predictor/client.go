// Package predictor is the HTTP client for the remote risk prediction
// service. It translates an assessment input into the service's column-named
// payload and maps every failure onto a transient AppError code.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/material"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/domain/risk"
	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
	"github.com/nikhilesh-s/mfr-material-risk-engine/pkg/errors"
)

const (
	predictPath    = "/predict"
	maxBodyBytes   = 1 << 20
	defaultTimeout = 10 * time.Second
)

// Request is the wire payload sent to the service.
type Request struct {
	Material   string  `json:"MATERIAL"`
	HeatFlux   float64 `json:"HEAT FLUX"`
	TimeToIgn  float64 `json:"TIME TO IGN"`
	FlowFactor float64 `json:"FLOW FACTOR"`
}

// Response is the wire payload returned by the service. Pointers detect
// missing fields.
type Response struct {
	RiskScore       *float64 `json:"riskScore"`
	RiskClass       *string  `json:"riskClass"`
	ResistanceIndex *float64 `json:"resistanceIndex"`
	Interpretation  *string  `json:"interpretation"`
}

// NewRequest builds the payload for in. Temperature and exposure time pass
// through unchanged.
func NewRequest(in material.InputSpec) Request {
	return Request{
		Material:   in.MaterialType.String(),
		HeatFlux:   in.Temperature,
		TimeToIgn:  in.ExposureTime,
		FlowFactor: in.Environment.FlowFactor(),
	}
}

// Observer receives one callback per completed call.
type Observer interface {
	RecordPredictorCall(outcome string, d time.Duration)
}

// Client calls the remote predictor.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       logging.Logger
	observer     Observer
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

// NewClient validates baseURL and applies opts. Retries default to zero.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeValidation, "predictor base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New(errors.ErrCodeValidation, "predictor base URL must be an absolute http(s) URL").
			WithDetail(baseURL)
	}
	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: defaultTimeout},
		userAgent:    "mfr-risk-engine",
		logger:       logging.NewNopLogger(),
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Predict sends in to the service and returns its validated prediction.
// Transport errors map to ErrCodePredictorUnavailable, non-2xx statuses to
// ErrCodePredictorStatus and undecodable or out-of-range payloads to
// ErrCodePredictorMalformed.
func (c *Client) Predict(ctx context.Context, in material.InputSpec) (risk.Prediction, error) {
	body, err := json.Marshal(NewRequest(in))
	if err != nil {
		return risk.Prediction{}, errors.Wrap(err, errors.ErrCodeSerialization, "encode predictor request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			wait := c.backoff(attempt)
			c.logger.Debug("retrying predictor call", logging.Int("attempt", attempt), logging.Duration("wait", wait))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return risk.Prediction{}, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "predictor call cancelled")
			}
		}

		start := time.Now()
		p, retryable, err := c.call(ctx, body)
		c.observe(outcome(err), time.Since(start))
		if err == nil {
			return p, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
	}
	return risk.Prediction{}, lastErr
}

func (c *Client) call(ctx context.Context, body []byte) (risk.Prediction, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return risk.Prediction{}, false, errors.Wrap(err, errors.ErrCodeInternal, "build predictor request")
	}
	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		code := errors.ErrCodePredictorUnavailable
		if ctx.Err() != nil {
			code = errors.ErrCodeTimeout
		}
		c.logger.Warn("predictor unreachable", logging.String("request_id", requestID), logging.Err(err))
		return risk.Prediction{}, true, errors.Wrap(err, code, "remote predictor unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return risk.Prediction{}, true, errors.Wrap(err, errors.ErrCodePredictorUnavailable, "read predictor response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("predictor returned error status",
			logging.String("request_id", requestID), logging.Int("status", resp.StatusCode))
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return risk.Prediction{}, retryable, errors.New(errors.ErrCodePredictorStatus,
			fmt.Sprintf("remote predictor returned HTTP %d", resp.StatusCode)).WithDetail(snippet(raw))
	}

	p, err := decode(raw)
	if err != nil {
		c.logger.Warn("predictor payload rejected", logging.String("request_id", requestID), logging.Err(err))
		return risk.Prediction{}, false, errors.Wrap(err, errors.ErrCodePredictorMalformed, "remote predictor payload rejected")
	}
	return p, false, nil
}

func decode(raw []byte) (risk.Prediction, error) {
	var r Response
	if err := json.Unmarshal(raw, &r); err != nil {
		return risk.Prediction{}, err
	}
	if r.RiskScore == nil || r.RiskClass == nil || r.ResistanceIndex == nil {
		return risk.Prediction{}, fmt.Errorf("missing riskScore, riskClass or resistanceIndex")
	}
	p := risk.Prediction{
		RiskScore:       int(math.Round(*r.RiskScore)),
		RiskClass:       risk.RiskClass(*r.RiskClass),
		ResistanceIndex: int(math.Round(*r.ResistanceIndex)),
	}
	if r.Interpretation != nil {
		p.Interpretation = *r.Interpretation
	}
	if err := p.Validate(); err != nil {
		return risk.Prediction{}, err
	}
	return p, nil
}

func (c *Client) observe(outcome string, d time.Duration) {
	if c.observer != nil {
		c.observer.RecordPredictorCall(outcome, d)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.IsCode(err, errors.ErrCodePredictorStatus):
		return "status"
	case errors.IsCode(err, errors.ErrCodePredictorMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if d > c.retryWaitMax {
		d = c.retryWaitMax
	}
	if q := int64(d / 4); q > 0 {
		d += time.Duration(rand.Int63n(q))
	}
	return d
}

func snippet(b []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

//Personal.AI order the ending
