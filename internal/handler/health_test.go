package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCount int

func (f fixedCount) Count() int { return int(f) }

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHealthApp(h *HealthHandler) *fiber.App {
	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestNewHealthHandler(t *testing.T) {
	before := time.Now()
	h := NewHealthHandler(nil, nil, "1.2.3")

	require.NotNil(t, h)
	assert.Equal(t, "1.2.3", h.version)
	assert.False(t, h.startTime.Before(before))
}

func TestHealthHandler_Health(t *testing.T) {
	stores := map[string]RecordCounter{"users": fixedCount(5), "posts": fixedCount(3)}

	t.Run("reports record counts", func(t *testing.T) {
		app := newHealthApp(NewHealthHandler(stores, nil, "dev"))

		for _, path := range []string{"/health", "/healthz"} {
			resp, err := app.Test(httptest.NewRequest("GET", path, nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			status := decode[HealthStatus](t, resp)
			assert.Equal(t, "healthy", status.Status)
			assert.Equal(t, map[string]int{"users": 5, "posts": 3}, status.Records)
			assert.Empty(t, status.Checks)
		}
	})

	t.Run("redis down degrades", func(t *testing.T) {
		down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })
		app := newHealthApp(NewHealthHandler(stores, down, "dev"))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		status := decode[HealthStatus](t, resp)
		assert.Equal(t, "degraded", status.Status)
		assert.Equal(t, "unhealthy: connection refused", status.Checks["redis"])
	})

	t.Run("redis up", func(t *testing.T) {
		up := pingerFunc(func(context.Context) error { return nil })
		app := newHealthApp(NewHealthHandler(stores, up, "dev"))

		resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
		require.NoError(t, err)
		assert.Equal(t, "healthy", decode[HealthStatus](t, resp).Checks["redis"])
	})
}

func TestHealthHandler_Probes(t *testing.T) {
	app := newHealthApp(NewHealthHandler(nil, nil, "9.9.9"))

	tests := []struct {
		path  string
		key   string
		value string
	}{
		{path: "/livez", key: "status", value: "alive"},
		{path: "/readyz", key: "status", value: "ready"},
		{path: "/version", key: "version", value: "9.9.9"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.value, decode[map[string]string](t, resp)[tt.key])
		})
	}
}

func TestDocsHandler(t *testing.T) {
	app := fiber.New()
	NewDocsHandler().RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/openapi.yaml", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/x-yaml", resp.Header.Get("Content-Type"))

	resp, err = app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
