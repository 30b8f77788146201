package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/testutil"
)

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    echo.HandlerFunc
		wantStatus int
	}{
		{
			name: "success path",
			handler: func(c echo.Context) error {
				return c.String(http.StatusOK, "ok")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "http error is written",
			handler: func(c echo.Context) error {
				return echo.NewHTTPError(http.StatusBadRequest, "bad input")
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown error becomes 500",
			handler: func(c echo.Context) error {
				return errors.New("boom")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.Use(NewLogging(testutil.MakeNoopLogger()).Handle)
			e.GET("/x", tt.handler)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestLogging_WritesRecord(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(NewLogging(logger.NewWithWriter(&buf, 0, "json")).Handle)
	e.GET("/x", func(c echo.Context) error { return errors.New("boom") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	out := buf.String()
	assert.Contains(t, out, `"msg":"HTTP request completed"`)
	assert.Contains(t, out, `"status":500`)
	assert.Contains(t, out, `"msg":"HTTP request failed"`)
	assert.Contains(t, out, `"error":"boom"`)
}
