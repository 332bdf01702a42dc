package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	appleAuthURL  = "https://appleid.apple.com/auth/authorize"
	appleTokenURL = "https://appleid.apple.com/auth/token"
)

// AppleProvider implements Sign in with Apple. The id_token comes straight
// from Apple's token endpoint over TLS, so its claims are read without a
// separate JWKS signature check.
type AppleProvider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	tokenURL     string
	httpClient   *http.Client
}

// NewAppleProvider creates an Apple provider. clientSecret is the signed
// JWT Apple requires as a client secret, generated out of band.
func NewAppleProvider(clientID, clientSecret, redirectURL string) *AppleProvider {
	return &AppleProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		tokenURL:     appleTokenURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// AuthURL returns the Apple consent page URL
func (p *AppleProvider) AuthURL(state string) string {
	params := url.Values{
		"client_id":     {p.clientID},
		"redirect_uri":  {p.redirectURL},
		"response_type": {"code"},
		"scope":         {"email"},
		"state":         {state},
	}
	return appleAuthURL + "?" + params.Encode()
}

// Exchange trades the authorization code for tokens and extracts the email
// claim from the returned id_token.
func (p *AppleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	form := url.Values{
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {p.redirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	var tokenResp struct {
		IDToken string `json:"id_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.IDToken == "" {
		return nil, fmt.Errorf("no id_token returned by Apple")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenResp.IDToken, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("no email claim in id_token")
	}

	return &Identity{Email: email}, nil
}
