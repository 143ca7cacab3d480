package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobboard/internal/apperr"
	"github.com/justsurfingit/jobboard/internal/services"
)

// formUpload opens the multipart file named field. A missing file yields a
// nil upload so the service can report which file it needed.
func formUpload(c *gin.Context, field string) (*services.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, apperr.Validation("Invalid file upload")
	}

	f, err := header.Open()
	if err != nil {
		return nil, func() {}, apperr.Dependency("Failed to read upload", err)
	}
	return &services.Upload{Filename: header.Filename, Body: f}, func() { f.Close() }, nil
}
