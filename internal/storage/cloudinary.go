package storage

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// PhotoStore hosts uploaded report photos and returns their public URLs.
// Raw bytes are never persisted locally.
type PhotoStore interface {
	Upload(ctx context.Context, folder string, file io.Reader) (string, error)
}

// CloudinaryStore uploads photos to Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore builds a store from a cloudinary:// connection URL.
func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	if url == "" {
		return nil, errors.New("cloudinary URL not configured")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload sends the image and returns its HTTPS URL.
func (s *CloudinaryStore) Upload(ctx context.Context, folder string, file io.Reader) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", err
	}
	// The SDK reports some rejections in the response body instead of err.
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return "", errors.New("upload returned no secure URL")
	}
	return resp.SecureURL, nil
}
