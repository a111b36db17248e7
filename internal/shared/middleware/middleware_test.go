package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuscollab/server/internal/shared/logger"
	"github.com/campuscollab/server/internal/shared/metrics"
	"github.com/campuscollab/server/internal/shared/requestctx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func staticValidator(id uuid.UUID) TokenValidator {
	return TokenValidatorFunc(func(token string) (*Identity, error) {
		if token != "good" {
			return nil, errors.New("invalid token")
		}
		return &Identity{UserID: id, Email: "ana@campus.edu"}, nil
	})
}

func TestAuth(t *testing.T) {
	userID := uuid.New()

	newRouter := func(mw gin.HandlerFunc) *gin.Engine {
		router := gin.New()
		router.Use(mw)
		router.GET("/test", func(c *gin.Context) {
			assert.Equal(t, GetUserID(c), requestctx.UserID(c.Request.Context()))
			c.String(http.StatusOK, GetUserID(c).String())
		})
		return router
	}

	tests := []struct {
		name     string
		optional bool
		header   string
		cookie   string
		status   int
		body     string
	}{
		{"required without header", false, "", "", http.StatusUnauthorized, ""},
		{"required with bad token", false, "Bearer bad", "", http.StatusUnauthorized, ""},
		{"required with non-bearer scheme", false, "Basic good", "", http.StatusUnauthorized, ""},
		{"required with good token", false, "Bearer good", "", http.StatusOK, userID.String()},
		{"required with good cookie", false, "", "good", http.StatusOK, userID.String()},
		{"cookie checked before header", false, "Bearer good", "bad", http.StatusUnauthorized, ""},
		{"optional without header", true, "", "", http.StatusOK, uuid.Nil.String()},
		{"optional with bad token", true, "Bearer bad", "", http.StatusOK, uuid.Nil.String()},
		{"optional with good token", true, "Bearer good", "", http.StatusOK, userID.String()},
		{"optional with good cookie", true, "", "good", http.StatusOK, userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(Auth(staticValidator(userID), tt.optional))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
				return
			}
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Run("generates new request ID when not provided", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		headerID := w.Header().Get(RequestIDHeader)
		assert.NotEmpty(t, headerID)
		assert.Equal(t, headerID, w.Body.String())
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, requestctx.RequestID(c.Request.Context()))
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "existing-request-id-123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "existing-request-id-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "existing-request-id-123", w.Body.String())
	})
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		status int
		want   string
	}{
		{"logs successful requests", "info", http.StatusOK, "INFO"},
		{"logs 4xx requests as warnings", "warn", http.StatusConflict, "WARN"},
		{"logs 5xx requests as errors", "error", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			log := logger.New(&logger.Config{Level: tt.level, Format: "json", Output: buf})

			router := gin.New()
			router.Use(RequestID(), Logging(log))
			router.GET("/test", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?q=robot", nil))

			out := buf.String()
			assert.Contains(t, out, "HTTP Request")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "q=robot")
			assert.Contains(t, out, "request_id")
		})
	}
}

func TestRecovery(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(&logger.Config{Level: "error", Format: "json", Output: buf})

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error","code":"INTERNAL_ERROR"}`, w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig()))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	router := gin.New()
	router.Use(Metrics(m))
	router.GET("/projects/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/projects/:id", "2xx")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}
