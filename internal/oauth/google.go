package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/oauth2"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// GoogleProvider implements the Google OAuth2 code flow.
type GoogleProvider struct {
	config      *oauth2.Config
	userinfoURL string
}

// NewGoogleProvider creates a Google provider from client credentials.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleEndpoint,
		},
		userinfoURL: googleUserinfoURL,
	}
}

// AuthURL returns the Google consent page URL
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Exchange trades the authorization code for tokens and resolves the
// account email from the userinfo endpoint.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(p.userinfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo: %w", err)
	}

	var userinfo struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &userinfo); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	if userinfo.Email == "" {
		return nil, fmt.Errorf("no email returned by Google")
	}

	return &Identity{Email: userinfo.Email}, nil
}
