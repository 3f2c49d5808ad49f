package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorrc/owner-dashboard/internal/infrastructure/logging"
)

func TestRequestID(t *testing.T) {
	t.Run("generates an id and threads it into both contexts", func(t *testing.T) {
		var middlewareID, loggingID string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			middlewareID = GetRequestID(r.Context())
			loggingID = logging.GetRequestID(r.Context())
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, middlewareID)
		assert.Equal(t, middlewareID, loggingID)
		assert.Equal(t, middlewareID, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses an inbound proxy id", func(t *testing.T) {
		var seen string
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetRequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "proxy-id-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "proxy-id-123", seen)
		assert.Equal(t, "proxy-id-123", rec.Header().Get(RequestIDHeader))
	})
}
