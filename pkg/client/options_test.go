package client

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: 60 * time.Second}
	c := &Client{}
	WithHTTPClient(custom)(c)
	assert.Same(t, custom, c.httpClient)

	WithHTTPClient(nil)(c)
	assert.Same(t, custom, c.httpClient)
}

func TestWithTimeout(t *testing.T) {
	c := &Client{httpClient: &http.Client{}}
	WithTimeout(3 * time.Second)(c)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
	WithTimeout(0)(c)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

func TestWithTimeout_DoesNotMutateCallerClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Minute}
	c := &Client{}
	WithHTTPClient(custom)(c)
	WithTimeout(2 * time.Second)(c)

	assert.Equal(t, time.Minute, custom.Timeout)
	assert.Equal(t, 2*time.Second, c.httpClient.Timeout)
	assert.NotSame(t, custom, c.httpClient)
}

func TestWithRetryMax(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"positive value", 5, 5},
		{"zero value", 0, 0},
		{"negative ignored", -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{retryMax: 2}
			WithRetryMax(tt.input)(c)
			assert.Equal(t, tt.expected, c.retryMax)
		})
	}
}

func TestWithRetryWait(t *testing.T) {
	c := &Client{retryWaitMin: time.Second, retryWaitMax: 5 * time.Second}
	WithRetryWait(100*time.Millisecond, 2*time.Second)(c)
	assert.Equal(t, 100*time.Millisecond, c.retryWaitMin)
	assert.Equal(t, 2*time.Second, c.retryWaitMax)

	WithRetryWait(300*time.Millisecond, 50*time.Millisecond)(c)
	assert.Equal(t, 300*time.Millisecond, c.retryWaitMin)
	assert.Equal(t, 300*time.Millisecond, c.retryWaitMax)

	WithRetryWait(0, time.Minute)(c)
	assert.Equal(t, 300*time.Millisecond, c.retryWaitMin)
	assert.Equal(t, 300*time.Millisecond, c.retryWaitMax)
}

func TestWithUserAgentAndKey(t *testing.T) {
	c := &Client{userAgent: "default"}
	WithUserAgent("")(c)
	assert.Equal(t, "default", c.userAgent)
	WithUserAgent("  ")(c)
	assert.Equal(t, "default", c.userAgent)
	WithUserAgent("mfrrisk-cli/1.0")(c)
	assert.Equal(t, "mfrrisk-cli/1.0", c.userAgent)

	WithAPIKey(" k \n")(c)
	assert.Equal(t, "k", c.apiKey)
	WithAPIKey("")(c)
	assert.Empty(t, c.apiKey)
}

//Personal.AI order the ending
