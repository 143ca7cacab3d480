package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhookVerifier checks an identity-provider webhook signature.
type WebhookVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func (e *identityEvent) name() string {
	return strings.TrimSpace(e.Data.FirstName + " " + e.Data.LastName)
}

func (e *identityEvent) email() string {
	if len(e.Data.EmailAddresses) == 0 {
		return ""
	}
	return e.Data.EmailAddresses[0].EmailAddress
}

// WebhookService mirrors identity-provider users into the users table.
type WebhookService struct {
	DB       *gorm.DB
	Verifier WebhookVerifier
}

func NewWebhookService(db *gorm.DB, verifier WebhookVerifier) *WebhookService {
	return &WebhookService{DB: db, Verifier: verifier}
}

// Handle verifies and applies one event. Nothing is written unless the
// signature checks out and the event type is known.
func (s *WebhookService) Handle(ctx context.Context, payload []byte, headers http.Header) (string, error) {
	if err := s.Verifier.Verify(payload, headers); err != nil {
		log.Warn().Err(err).Msg("webhook verification failed")
		return "", apperr.Validation("Webhook verification failed")
	}

	var ev identityEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return "", apperr.Validation("Invalid webhook payload")
	}

	switch ev.Type {
	case "user.created", "user.updated", "user.deleted":
		if ev.Data.ID == "" {
			return ev.Type, apperr.Validation("Invalid webhook payload")
		}
	default:
		return ev.Type, apperr.Validation("Unhandled event type")
	}

	db := s.DB.WithContext(ctx)
	var err error
	switch ev.Type {
	case "user.created":
		user := &models.User{ID: ev.Data.ID, Name: ev.name(), Email: ev.email(), Image: ev.Data.ImageURL}
		// deliveries are retried, so a repeat create updates the profile
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image", "updated_at"}),
		}).Create(user).Error
	case "user.updated":
		err = db.Model(&models.User{}).Where("id = ?", ev.Data.ID).Updates(map[string]any{
			"name":  ev.name(),
			"email": ev.email(),
			"image": ev.Data.ImageURL,
		}).Error
	case "user.deleted":
		err = db.Delete(&models.User{}, "id = ?", ev.Data.ID).Error
	}
	if err != nil {
		return ev.Type, apperr.Dependency("Webhook processing failed", err)
	}

	log.Info().Str("event", ev.Type).Str("user_id", ev.Data.ID).Msg("webhook applied")
	return ev.Type, nil
}
