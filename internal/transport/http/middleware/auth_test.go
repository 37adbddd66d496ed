package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ErlanBelekov/taskboard/internal/auth"
	"github.com/ErlanBelekov/taskboard/internal/domain"
	"github.com/ErlanBelekov/taskboard/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// tokenVerifier adapts *auth.TokenService to middleware.TokenVerifier.
type tokenVerifier struct {
	svc *auth.TokenService
}

func (v tokenVerifier) Verify(_ context.Context, raw string) (*auth.Claims, error) {
	return v.svc.Verify(raw)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting GET /protected.
// The handler echoes the identity seen in both the gin and request contexts.
func newEngine(svc *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokenVerifier{svc: svc}), func(c *gin.Context) {
		id, _ := domain.IdentityFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": c.GetString(middleware.UserIDKey), "ctx": id.ID, "email": id.Email})
	})
	return r
}

func do(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenService([]byte(testKey), time.Hour)), "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := errorBody(t, w)["kind"]; got != "authentication" {
		t.Errorf("kind = %q, want authentication", got)
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenService([]byte(testKey), time.Hour)), "Basic dXNlcjpwYXNz")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	w := do(t, newEngine(auth.NewTokenService([]byte(testKey), time.Hour)), "Bearer not.a.jwt")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := errorBody(t, w)["error"]; got != "Token is invalid" {
		t.Errorf("error = %q", got)
	}
}

func TestAuth_ExpiredToken_Returns401WithDistinctMessage(t *testing.T) {
	now := time.Now()
	issuer := auth.NewTokenService([]byte(testKey), time.Hour, auth.WithClock(func() time.Time { return now.Add(-2 * time.Hour) }))
	tok, _, err := issuer.Issue(domain.Identity{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(auth.NewTokenService([]byte(testKey), time.Hour)), "Bearer "+tok)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := errorBody(t, w)["error"]; got != "Token has expired" {
		t.Errorf("error = %q, want expired message", got)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	other := auth.NewTokenService([]byte("different-key-that-is-32-chars!!"), time.Hour)
	tok, _, err := other.Issue(domain.Identity{ID: "user-1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(auth.NewTokenService([]byte(testKey), time.Hour)), "Bearer "+tok)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_ValidToken_SetsIdentity(t *testing.T) {
	svc := auth.NewTokenService([]byte(testKey), time.Hour)
	tok, _, err := svc.Issue(domain.Identity{ID: "user-abc", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := do(t, newEngine(svc), "Bearer "+tok)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := errorBody(t, w)
	if body["gin"] != "user-abc" || body["ctx"] != "user-abc" || body["email"] != "a@b.com" {
		t.Errorf("identity not propagated: %v", body)
	}
}
