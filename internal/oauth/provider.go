// Package oauth wraps third-party identity providers behind a single
// capability: send the user to consent, then turn the callback code into a
// verified email.
package oauth

import (
	"context"
)

// Identity is the verified result of an OAuth code exchange.
type Identity struct {
	Email string
}

// Provider is implemented by each supported identity provider.
type Provider interface {
	// AuthURL returns the consent page URL carrying the opaque state.
	AuthURL(state string) string
	// Exchange trades the callback authorization code for a verified identity.
	Exchange(ctx context.Context, code string) (*Identity, error)
}
