// Package logger configures the process-wide zerolog logger and the gin
// request logging that goes with it.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// Setup installs the global logger. format is "json" or "console".
func Setup(level, format string) {
	SetupWriter(os.Stderr, level, format)
}

func SetupWriter(w io.Writer, level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

// GinMiddleware tags each request with an id and logs it once it finishes.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Msg("http")
	}
}

// Recovery turns a handler panic into the standard failure envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Str("path", c.Request.URL.Path).
			Interface("panic", rec).
			Msg("panic")
		c.AbortWithStatusJSON(500, gin.H{"success": false, "message": "Internal server error"})
	})
}
