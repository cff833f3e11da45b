// internal/app/features/upload/files.go
package upload

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"golang.org/x/sync/errgroup"
)

var (
	errTooLarge   = fmt.Errorf("File too large. Maximum size is %dMB", MaxFileBytes>>20)
	errNotImage   = errors.New("Only image files are allowed")
	errTooMany    = fmt.Errorf("Too many files. Maximum is %d", MaxPropertyImages)
	errBadForm    = errors.New("Invalid multipart form")
	errNoFileSent = errors.New("no file")
)

// userError marks errors whose text is safe to return to the client.
func userError(err error) bool {
	return errors.Is(err, errTooLarge) || errors.Is(err, errNotImage) ||
		errors.Is(err, errTooMany) || errors.Is(err, errBadForm)
}

// parseFiles reads the multipart form and returns the files under field,
// rejecting any that break the size or count limits.
func parseFiles(w http.ResponseWriter, r *http.Request, field string, limit int) ([]*multipart.FileHeader, error) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(limit)*MaxFileBytes+1<<20)
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, errTooLarge
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, errNoFileSent
		}
		return nil, errBadForm
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, errNoFileSent
	}
	if len(files) > limit {
		return nil, errTooMany
	}
	for _, fh := range files {
		if fh.Size > MaxFileBytes {
			return nil, errTooLarge
		}
	}
	return files, nil
}

// store sniffs fh's content type and writes it to folder.
func (h *Handler) store(ctx context.Context, folder string, fh *multipart.FileHeader) (imagestore.Object, error) {
	f, err := fh.Open()
	if err != nil {
		return imagestore.Object{}, err
	}
	defer f.Close()

	br := bufio.NewReaderSize(f, 512)
	head, _ := br.Peek(512)
	ct := http.DetectContentType(head)
	if !imagestore.IsImageType(ct) {
		return imagestore.Object{}, errNotImage
	}
	return h.Images.Put(ctx, folder, ct, br)
}

// storeAll writes every file concurrently, preserving input order in the
// result. Objects already written are removed if any file fails.
func (h *Handler) storeAll(ctx context.Context, folder string, files []*multipart.FileHeader) ([]imagestore.Object, error) {
	out := make([]imagestore.Object, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, fh := range files {
		g.Go(func() error {
			obj, err := h.store(gctx, folder, fh)
			if err != nil {
				return err
			}
			out[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, obj := range out {
			if obj.PublicID != "" {
				_ = h.Images.Delete(context.WithoutCancel(ctx), obj.PublicID)
			}
		}
		return nil, err
	}
	return out, nil
}
