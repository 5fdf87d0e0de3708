package client

import (
	"net/http"
	"strings"
	"time"
)

// Option configures a Client in NewClient. Options apply in order.
type Option func(*Client)

// WithHTTPClient replaces the transport used for every API call. The
// client is used as given; WithTimeout applied afterwards works on a copy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAPIKey sends key as a bearer token on every request. Surrounding
// whitespace is dropped and an empty key sends no Authorization header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithTimeout bounds each attempt, so a retried assessment can take up to
// (retries+1) times d. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			return
		}
		hc := http.Client{}
		if c.httpClient != nil {
			hc = *c.httpClient
		}
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithLogger receives request and retry diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetryMax sets how often a transient failure (transport error, 429 or
// 5xx) is retried. Zero disables retries; negative values are ignored.
func WithRetryMax(retryMax int) Option {
	return func(c *Client) {
		if retryMax >= 0 {
			c.retryMax = retryMax
		}
	}
}

// WithRetryWait sets the exponential backoff window. A max below min
// collapses the window to a fixed delay of min. A non-positive min is ignored.
func WithRetryWait(min, max time.Duration) Option {
	return func(c *Client) {
		if min <= 0 {
			return
		}
		if max < min {
			max = min
		}
		c.retryWaitMin, c.retryWaitMax = min, max
	}
}

// WithUserAgent identifies the caller, e.g. "mfrrisk-cli/1.2". Empty keeps
// the SDK default.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			c.userAgent = ua
		}
	}
}

//Personal.AI order the ending
