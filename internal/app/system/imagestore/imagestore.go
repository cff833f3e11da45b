// internal/app/system/imagestore/imagestore.go
//
// Package imagestore keeps uploaded listing photos and avatars. Objects are
// addressed by a PublicID ("properties/3f2c...jpg") that clients send back
// to delete them.
package imagestore

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object is a stored image.
type Object struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Store saves and removes images.
type Store interface {
	Put(ctx context.Context, folder, contentType string, r io.Reader) (Object, error)
	Delete(ctx context.Context, publicID string) error
}

// Folders used by the upload endpoints.
const (
	FolderProperties = "properties"
	FolderAvatars    = "avatars"
)

var (
	// ErrInvalidID is returned for IDs that are empty or escape the store root.
	ErrInvalidID = errors.New("invalid image id")
	// ErrNotFound is returned when deleting an ID that does not exist.
	ErrNotFound = errors.New("image not found")
)

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// IsImageType reports whether contentType is one of the accepted formats.
func IsImageType(contentType string) bool {
	_, ok := extByType[contentType]
	return ok
}

// newPublicID builds "<folder>/<uuid><ext>".
func newPublicID(folder, contentType string) string {
	return path.Join(folder, uuid.NewString()+extByType[contentType])
}

// cleanID normalizes a client-supplied ID and rejects traversal.
func cleanID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "/") {
		return "", ErrInvalidID
	}
	c := path.Clean(id)
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return "", ErrInvalidID
	}
	return c, nil
}

// InFolder normalizes id and requires it to name one object directly inside
// folder. The folder itself and anything nested deeper are rejected.
func InFolder(id, folder string) (string, error) {
	c, err := cleanID(id)
	if err != nil {
		return "", err
	}
	dir, name := path.Split(c)
	if dir != folder+"/" || name == "" {
		return "", ErrInvalidID
	}
	return c, nil
}

// DecodeURLID turns the URL-safe form used in DELETE routes, where "~"
// stands for "/", back into a PublicID.
func DecodeURLID(s string) string {
	return strings.ReplaceAll(s, "~", "/")
}
