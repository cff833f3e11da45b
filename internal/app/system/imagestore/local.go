// internal/app/system/imagestore/local.go
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local stores images on disk under root and serves them from urlPrefix.
type Local struct {
	root      string
	urlPrefix string
}

func NewLocal(root, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &Local{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (l *Local) Put(ctx context.Context, folder, contentType string, r io.Reader) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	id := newPublicID(folder, contentType)
	full := filepath.Join(l.root, filepath.FromSlash(id))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Object{}, err
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return Object{}, err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return Object{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return Object{}, err
	}
	return Object{URL: l.urlPrefix + "/" + id, PublicID: id}, nil
}

func (l *Local) Delete(ctx context.Context, publicID string) error {
	id, err := cleanID(publicID)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.root, filepath.FromSlash(id))); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Root is the directory served at the URL prefix.
func (l *Local) Root() string { return l.root }
