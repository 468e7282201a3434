package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supesu/discord-webhook-client/pkg/logger"
)

func TestNewServer(t *testing.T) {
	server := NewServer(9191, logger.NewNop())

	require.NotNil(t, server)
	assert.Equal(t, 9191, server.Port())
	assert.Equal(t, ":9191", server.server.Addr)
}

func TestServer_HealthEndpoint(t *testing.T) {
	server := NewServer(0, logger.NewNop())

	recorder := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	server := NewServer(0, logger.NewNop())

	recorder := httptest.NewRecorder()
	server.server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	// The default registry always carries the Go runtime collectors.
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServer_StartAndStop(t *testing.T) {
	// Port 0 lets the kernel pick a free port so parallel test runs
	// cannot collide.
	server := NewServer(0, logger.NewNop())

	require.NoError(t, server.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Stop(ctx))
}
