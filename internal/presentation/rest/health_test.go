package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muyuda/khaya/internal/presentation/rest"
)

func TestHealthHandler(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		path   string
		checks map[string]rest.Check
		want   int
	}{
		{"liveness ignores checks", "/healthz", map[string]rest.Check{"redis": broken}, http.StatusOK},
		{"ready with no checks", "/readyz", nil, http.StatusOK},
		{"ready when all pass", "/readyz", map[string]rest.Check{"postgres": healthy, "redis": healthy}, http.StatusOK},
		{"unavailable when one fails", "/readyz", map[string]rest.Check{"postgres": healthy, "redis": broken}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			rest.NewHealthHandler("kprd", tt.checks, discardLogger()).RegisterRoutes(mux)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusServiceUnavailable {
				assert.Contains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}
