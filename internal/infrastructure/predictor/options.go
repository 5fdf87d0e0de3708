package predictor

import (
	"net/http"
	"time"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/infrastructure/monitoring/logging"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds a single call, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver reports per-call outcomes, typically to Prometheus.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithRetryMax sets how many times a transport error, 5xx or 429 is retried.
func WithRetryMax(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retryMax = n
		}
	}
}

// WithRetryWait sets the backoff window. max is ignored when below min.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		if min > 0 {
			c.retryWaitMin = min
			if max >= min {
				c.retryWaitMax = max
			}
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

//Personal.AI order the ending
