// internal/app/features/upload/images.go
package upload

import (
	"errors"
	"net/http"

	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandlePropertyImages stores up to MaxPropertyImages listing photos sent
// as the "images" field.
func (h *Handler) HandlePropertyImages(w http.ResponseWriter, r *http.Request) {
	files, err := parseFiles(w, r, "images", MaxPropertyImages)
	if err != nil {
		h.badUpload(w, err, "Please upload at least one image")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "upload property images")
	defer cancel()

	objs, err := h.storeAll(ctx, imagestore.FolderProperties, files)
	if err != nil {
		if userError(err) {
			respond.BadRequest(w, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "upload property images", err)
		return
	}
	h.Log.Info("property images uploaded", zap.Int("count", len(objs)))
	respond.OK(w, respond.M{"message": "Images uploaded successfully", "images": objs})
}

// HandleAvatar stores a single profile photo sent as the "avatar" field.
func (h *Handler) HandleAvatar(w http.ResponseWriter, r *http.Request) {
	files, err := parseFiles(w, r, "avatar", 1)
	if err != nil {
		h.badUpload(w, err, "Please upload an image")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "upload avatar")
	defer cancel()

	obj, err := h.store(ctx, imagestore.FolderAvatars, files[0])
	if err != nil {
		if userError(err) {
			respond.BadRequest(w, err.Error())
			return
		}
		respond.ServerError(w, h.Log, "upload avatar", err)
		return
	}
	respond.OK(w, respond.M{"message": "Avatar uploaded successfully", "avatar": obj})
}

// HandleDelete removes a stored image. The {id} parameter is the PublicID
// with "/" written as "~".
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := imagestore.InFolder(imagestore.DecodeURLID(chi.URLParam(r, "id")), imagestore.FolderProperties)
	if err != nil {
		respond.BadRequest(w, "Invalid image id")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete image")
	defer cancel()

	if err := h.Images.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, imagestore.ErrInvalidID):
			respond.BadRequest(w, "Invalid image id")
		case errors.Is(err, imagestore.ErrNotFound):
			respond.NotFound(w, "Image not found")
		default:
			respond.ServerError(w, h.Log, "delete image", err)
		}
		return
	}
	h.Log.Info("image deleted", zap.String("public_id", id))
	respond.OK(w, respond.M{"message": "Image deleted successfully"})
}

func (h *Handler) badUpload(w http.ResponseWriter, err error, missing string) {
	if userError(err) {
		respond.BadRequest(w, err.Error())
		return
	}
	respond.BadRequest(w, missing)
}
