package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"creator-platform/internal/auth"
	"creator-platform/internal/oauth"
	"creator-platform/internal/services"
)

// stubProvider fakes an OAuth provider for callback tests.
type stubProvider struct {
	identity    *oauth.Identity
	exchangeErr error
}

func (p *stubProvider) AuthURL(state string) string {
	return "https://provider.example/auth?state=" + state
}

func (p *stubProvider) Exchange(ctx context.Context, code string) (*oauth.Identity, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.identity, nil
}

func authRouter(t *testing.T, provider oauth.Provider) *gin.Engine {
	t.Helper()
	auth.InitJWT("test-secret")
	gin.SetMode(gin.TestMode)

	db := setupHandlerDB(t)
	handler := NewAuthHandler(services.NewAuthService(db), provider, provider, "http://localhost:3000")

	router := gin.New()
	router.GET("/api/auth/google/callback", handler.GoogleCallback)
	return router
}

func TestOAuthCallbackExchangeFailure(t *testing.T) {
	provider := &stubProvider{exchangeErr: errors.New("provider rejected the code")}
	router := authRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=bad-code", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// A failed code exchange is an external-service failure, reported as 500
	// like every other one.
	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for failed exchange, got %d (%s)", w.Code, w.Body.String())
	}
}

func TestOAuthCallbackSuccessRedirectsWithToken(t *testing.T) {
	provider := &stubProvider{identity: &oauth.Identity{Email: "alice@example.com"}}
	router := authRouter(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=good-code", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("Expected 302, got %d (%s)", w.Code, w.Body.String())
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "http://localhost:3000/auth/callback?token=") {
		t.Errorf("Unexpected redirect target: %s", location)
	}
}

func TestOAuthCallbackMissingCode(t *testing.T) {
	router := authRouter(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing code, got %d", w.Code)
	}
}
