package http

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/config"
)

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(config.ServerConfig{Port: 8081}, http.NotFoundHandler(), nil)

	assert.Equal(t, ":8081", s.Addr())
	assert.Equal(t, config.DefaultReadTimeout, s.httpServer.ReadTimeout)
	assert.Equal(t, config.DefaultWriteTimeout, s.httpServer.WriteTimeout)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })
	s := NewServer(config.ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second}, handler, nil)

	done := make(chan error, 1)
	go func() { done <- s.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

//Personal.AI order the ending
