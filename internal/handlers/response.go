package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/dtos"
	"github.com/rs/zerolog/log"
)

// ok writes the success envelope: {success, message, ...payload}.
func ok(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail maps err to its status and writes the failure envelope.
func fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)

	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("route", c.FullPath()).
		Int("status", status).
		Msg("request failed")

	c.JSON(status, gin.H{"success": false, "message": apperr.Message(err)})
}

// badRequest reports a binding or validation failure.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": dtos.ValidationMessage(err)})
}
