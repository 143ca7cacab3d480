// Package media stores uploaded files (company logos, resumes) on the
// external media host and hands back their public URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader stores one file and returns a stable URL for it.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

var ErrNotConfigured = errors.New("media host is not configured")

type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinary builds an uploader from a cloudinary:// URL.
func NewCloudinary(url string) (*Cloudinary, error) {
	if url == "" {
		return nil, ErrNotConfigured
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         folder,
		UseFilename:    boolPtr(true),
		UniqueFilename: boolPtr(true),
		ResourceType:   "auto",
	})
	if err != nil {
		return "", fmt.Errorf("upload of %s failed: %w", filename, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("upload of %s rejected: %s", filename, res.Error.Message)
	}
	return res.SecureURL, nil
}

// Disabled fails every upload; used when no media host is configured so the
// rest of the API still works.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrNotConfigured
}

func boolPtr(b bool) *bool { return &b }
