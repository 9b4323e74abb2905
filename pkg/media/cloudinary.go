// Package media stores uploaded images on Cloudinary.
package media

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"os"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrNotConfigured = errors.New("media storage is not configured")

type Store struct {
	cld *cloudinary.Cloudinary
}

// New builds a Store from the CLOUDINARY_URL environment variable.
// Returns a nil store (not an error) when the variable is absent, so the
// server can run without media uploads.
func New() *Store {
	url := os.Getenv("CLOUDINARY_URL")
	if url == "" {
		log.Println("Media storage disabled - CLOUDINARY_URL not provided")
		return nil
	}

	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}
	log.Println("Media storage initialized with Cloudinary")
	return &Store{cld: cld}
}

type UploadResult struct {
	URL      string
	PublicID string
}

// Upload stores a file in the given folder and returns its public URL and
// id. The id is kept so the asset can be destroyed on replacement.
func (s *Store) Upload(ctx context.Context, file multipart.File, folder string) (*UploadResult, error) {
	if s == nil {
		return nil, ErrNotConfigured
	}

	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return nil, err
	}
	return &UploadResult{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

func (s *Store) Destroy(ctx context.Context, publicID string) error {
	if s == nil {
		return ErrNotConfigured
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
