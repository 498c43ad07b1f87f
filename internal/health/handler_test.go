// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy(context.Context) error { return nil }

func get(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestReadiness(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		h := NewHandler(
			Check{Name: "database", Checker: pingFunc(healthy)},
			Check{Name: "redis", Checker: pingFunc(healthy)},
		)

		rec, body := get(t, h, "/readyz")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body.Status)
		require.Len(t, body.Checks, 2)
		assert.Equal(t, "database", body.Checks[0].Name)
		assert.Equal(t, "redis", body.Checks[1].Name)
	})

	t.Run("one failing", func(t *testing.T) {
		h := NewHandler(
			Check{Name: "database", Checker: pingFunc(func(context.Context) error {
				return errors.New("down")
			})},
			Check{Name: "redis", Checker: pingFunc(healthy)},
		)

		rec, body := get(t, h, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "degraded", body.Status)
		assert.False(t, body.Checks[0].Healthy)
		assert.Equal(t, "ping failed", body.Checks[0].Message)
	})

	t.Run("unconfigured checker", func(t *testing.T) {
		h := NewHandler(Check{Name: "redis"})

		rec, body := get(t, h, "/readyz")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "redis checker not configured", body.Checks[0].Message)
	})
}

func TestShutdownFailsProbes(t *testing.T) {
	h := NewHandler(Check{Name: "database", Checker: pingFunc(healthy)})

	rec, _ := get(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	h.SetShutdown(true)

	rec, body := get(t, h, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "shutting_down", body.Status)

	rec, _ = get(t, h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
