package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/breachwatch/breachwatch/internal/auth"
	"github.com/breachwatch/breachwatch/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	fn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) VerifyToken(token string) (*auth.Claims, error) {
	return f.fn(token)
}

func TestOptionalAuth(t *testing.T) {
	verifier := &fakeVerifier{
		fn: func(token string) (*auth.Claims, error) {
			if token != "good-token" {
				return nil, errors.New("signature is invalid")
			}

			return &auth.Claims{UserID: "user-1", Email: "jane@example.com"}, nil
		},
	}

	tests := []struct {
		name       string
		authHeader string
		wantEmail  string
		wantSet    bool
	}{
		{
			name: "no header passes through anonymously",
		},
		{
			name:       "valid token attaches identity",
			authHeader: "Bearer good-token",
			wantEmail:  "jane@example.com",
			wantSet:    true,
		},
		{
			name:       "invalid token still passes through",
			authHeader: "Bearer bad-token",
		},
		{
			name:       "empty bearer value passes through",
			authHeader: "Bearer ",
		},
		{
			name:       "non-bearer scheme is ignored",
			authHeader: "Basic dXNlcjpwYXNz",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()

			var (
				gotEmail string
				gotSet   bool
			)

			mw := middlewares.NewAuthMiddleware(verifier)

			r.POST("/probe", mw.OptionalAuth(), func(ctx *gin.Context) {
				gotEmail, gotSet = middlewares.EmailFromContext(ctx)
				ctx.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/probe", nil)

			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			// the route never gates on the token
			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, want 200", w.Code)
			}

			if gotSet != tc.wantSet {
				t.Errorf("identity set = %v, want %v", gotSet, tc.wantSet)
			}

			if gotEmail != tc.wantEmail {
				t.Errorf("got email %q, want %q", gotEmail, tc.wantEmail)
			}
		})
	}
}

func TestRequestIDEchoAndGenerate(t *testing.T) {
	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/probe", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	t.Run("inbound id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Request-Id", "abc-123")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
			t.Errorf("got %q, want abc-123", got)
		}
	})

	t.Run("missing id is generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Header().Get("X-Request-Id") == "" {
			t.Error("expected a generated request id")
		}
	})
}
