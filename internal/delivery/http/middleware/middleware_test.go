package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobkit-backend/internal/delivery/http/response"
	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubAuth only answers Authenticate; every other method panics.
type stubAuth struct {
	domain.AuthUsecase
	tokens map[string]*domain.SessionClaims
}

func (s stubAuth) Authenticate(ctx context.Context, accessToken string) (*domain.SessionClaims, error) {
	if claims, ok := s.tokens[accessToken]; ok {
		return claims, nil
	}
	return nil, apperror.Unauthorized("Invalid or expired token")
}

func newAuth() stubAuth {
	return stubAuth{tokens: map[string]*domain.SessionClaims{
		"employee-token": {AccountID: 7, Role: domain.RoleEmployee},
		"admin-token":    {AccountID: 1, Role: domain.RoleAdmin},
	}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func whoAmI(c *gin.Context) {
	id, role, ok := domain.PrincipalFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"id": id, "role": role, "authenticated": ok})
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/me", AuthMiddleware(newAuth()), whoAmI)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic employee-token", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer employee-token", http.StatusOK},
		{"scheme is case insensitive", "bearer employee-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer employee-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"id":7,"role":"employee","authenticated":true}`, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := gin.New()
	r.GET("/who", OptionalAuth(newAuth()), whoAmI)

	for header, want := range map[string]bool{
		"":                   false,
		"Bearer garbage":     false,
		"Bearer admin-token": true,
		"Token admin-token":  false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, header)

		var body struct {
			Authenticated bool `json:"authenticated"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, want, body.Authenticated, header)
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler(zap.NewNop()))
	r.GET("/admin", AuthMiddleware(newAuth()), RequireRole(domain.RoleAdmin), whoAmI)
	r.GET("/anon", RequireRole(domain.RoleAdmin), whoAmI)

	serve := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, serve("/admin", "admin-token"))
	assert.Equal(t, http.StatusForbidden, serve("/admin", "employee-token"))
	assert.Equal(t, http.StatusUnauthorized, serve("/anon", ""))
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(RequestID(), ErrorHandler(zap.New(core)))
	r.GET("/fields", func(c *gin.Context) {
		_ = c.Error(apperror.Validation(map[string]string{"email": "Email already exists."}))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: connection refused"))
	})
	r.GET("/written", func(c *gin.Context) {
		c.String(http.StatusTeapot, "short and stout")
		_ = c.Error(errors.New("ignored"))
	})

	t.Run("field errors render under error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fields", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)

		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Validation failed", body.Message)
		assert.Equal(t, map[string]interface{}{"email": "Email already exists."}, body.Error)
		assert.NotEmpty(t, body.RequestID)
	})

	t.Run("unexpected errors are hidden and logged", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
		require.Equal(t, 1, logs.FilterMessage("Internal server error").Len())
	})

	t.Run("written responses are left alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/written", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
		assert.Equal(t, "short and stout", w.Body.String())
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID)))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := w.Header().Get(RequestIDHeader)
	assert.Len(t, minted, 36)
	assert.Equal(t, minted, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequestLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}

func TestRateLimitInMemory(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	r := gin.New()
	r.GET("/", rl.Middleware(GlobalRateLimitConfig(2, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	hit := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1").Code)
	w := hit("10.0.0.1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	w = hit("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	// Other clients have their own bucket.
	assert.Equal(t, http.StatusOK, hit("10.0.0.2").Code)
}

func TestRateLimitDisabled(t *testing.T) {
	rl := NewRateLimiter(nil, nil)
	r := gin.New()
	r.GET("/", rl.Middleware(GlobalRateLimitConfig(0, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}
