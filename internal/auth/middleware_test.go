package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	InitJWT("test-secret")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	protected := router.Group("/api", AuthMiddleware())
	protected.GET("/me", func(c *gin.Context) {
		email, ok := GetEmail(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no identity in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	protected.GET("/creator-only", RequireRole("creator"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func doRequest(router *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := setupAuthRouter(t)

	token, err := GenerateToken("alice@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := doRequest(router, "/api/me", "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "alice@example.com") {
		t.Errorf("Expected email in response, got %s", w.Body.String())
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthRouter(t)

	w := doRequest(router, "/api/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for missing header, got %d", w.Code)
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := setupAuthRouter(t)

	token, err := GenerateToken("alice@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no scheme", token},
		{"wrong scheme", "Basic " + token},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "/api/me", tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", w.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	router := setupAuthRouter(t)

	creatorToken, err := GenerateToken("carol@example.com", "creator")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	userToken, err := GenerateToken("bob@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	w := doRequest(router, "/api/creator-only", "Bearer "+creatorToken)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for creator role, got %d", w.Code)
	}

	w = doRequest(router, "/api/creator-only", "Bearer "+userToken)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for wrong role, got %d", w.Code)
	}
}
