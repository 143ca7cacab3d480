package auth

import (
	"errors"
	"fmt"

	svix "github.com/svix/svix-webhooks/go"
)

// NewWebhookVerifier returns a verifier for identity-provider webhooks
// signed with secret (a "whsec_" key).
func NewWebhookVerifier(secret string) (*svix.Webhook, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is not configured")
	}
	wh, err := svix.NewWebhook(secret)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return wh, nil
}
