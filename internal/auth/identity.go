package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"
)

// UserVerifier resolves a job seeker's bearer token to their user id.
type UserVerifier interface {
	VerifyUser(ctx context.Context, token string) (string, error)
}

// ClerkVerifier checks Clerk session tokens against the instance's JWKS.
// Keys are cached by key id.
type ClerkVerifier struct {
	jwks *jwks.Client

	mu   sync.Mutex
	keys map[string]*clerk.JSONWebKey
}

func NewClerkVerifier(secretKey string) *ClerkVerifier {
	config := &clerk.ClientConfig{}
	config.Key = clerk.String(secretKey)
	return &ClerkVerifier{
		jwks: jwks.NewClient(config),
		keys: make(map[string]*clerk.JSONWebKey),
	}
}

func (v *ClerkVerifier) VerifyUser(ctx context.Context, token string) (string, error) {
	unsafeClaims, err := jwt.Decode(ctx, &jwt.DecodeParams{Token: token})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	jwk, err := v.key(ctx, unsafeClaims.KeyID)
	if err != nil {
		return "", err
	}

	claims, err := jwt.Verify(ctx, &jwt.VerifyParams{Token: token, JWK: jwk})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (v *ClerkVerifier) key(ctx context.Context, kid string) (*clerk.JSONWebKey, error) {
	v.mu.Lock()
	jwk, ok := v.keys[kid]
	v.mu.Unlock()
	if ok {
		return jwk, nil
	}

	jwk, err := jwt.GetJSONWebKey(ctx, &jwt.GetJSONWebKeyParams{KeyID: kid, JWKSClient: v.jwks})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signing key: %w", err)
	}

	v.mu.Lock()
	v.keys[kid] = jwk
	v.mu.Unlock()
	return jwk, nil
}
