package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"creator-platform/internal/oauth"
	"creator-platform/internal/services"
)

// AuthHandler handles signup, login and OAuth endpoints
type AuthHandler struct {
	authService *services.AuthService
	google      oauth.Provider
	apple       oauth.Provider
	frontendURL string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, google, apple oauth.Provider, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		google:      google,
		apple:       apple,
		frontendURL: frontendURL,
	}
}

// oauthState carries the requested role through the provider round trip.
type oauthState struct {
	Role string `json:"role"`
}

// Signup creates a password account
// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.authService.Signup(req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Signup failed for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"role":    user.Role,
		"token":   token,
	})
}

// Login verifies a password account
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"role":    user.Role,
	})
}

// GoogleRedirect sends the user to the Google consent page
// GET /api/auth/google
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	h.providerRedirect(c, h.google)
}

// GoogleCallback completes the Google OAuth flow
// GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	h.providerCallback(c, h.google, "Google")
}

// AppleRedirect sends the user to the Apple consent page
// GET /api/auth/apple
func (h *AuthHandler) AppleRedirect(c *gin.Context) {
	h.providerRedirect(c, h.apple)
}

// AppleCallback completes the Sign in with Apple flow
// GET /api/auth/apple/callback
func (h *AuthHandler) AppleCallback(c *gin.Context) {
	h.providerCallback(c, h.apple, "Apple")
}

func (h *AuthHandler) providerRedirect(c *gin.Context, provider oauth.Provider) {
	role := c.Query("role")
	state, err := json.Marshal(oauthState{Role: role})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build state"})
		return
	}

	c.Redirect(http.StatusFound, provider.AuthURL(string(state)))
}

func (h *AuthHandler) providerCallback(c *gin.Context, provider oauth.Provider, name string) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	var state oauthState
	if raw := c.Query("state"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid state"})
			return
		}
	}

	identity, err := provider.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Printf("%s code exchange failed: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("%s authentication failed", name)})
		return
	}

	user, token, err := h.authService.OAuthLogin(identity.Email, state.Role)
	if err != nil {
		log.Printf("%s login failed for %s: %v", name, identity.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	redirect := fmt.Sprintf("%s/auth/callback?token=%s&role=%s",
		h.frontendURL, url.QueryEscape(token), url.QueryEscape(user.Role))
	c.Redirect(http.StatusFound, redirect)
}
