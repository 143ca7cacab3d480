package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/services"
)

// maxWebhookBody caps the payload read before signature verification.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	WebhookService *services.WebhookService
}

func NewWebhookHandler(ws *services.WebhookService) *WebhookHandler {
	return &WebhookHandler{WebhookService: ws}
}

// Receive is POST /webhook. The signature covers the raw body, so it is read
// as bytes and never bound.
func (h *WebhookHandler) Receive(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		fail(c, apperr.Validation("Invalid webhook payload"))
		return
	}

	event, err := h.WebhookService.Handle(c.Request.Context(), payload, c.Request.Header)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Webhook received", gin.H{"event": event})
}
