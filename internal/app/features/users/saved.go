// internal/app/features/users/saved.go
package users

import (
	"errors"
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	savedstore "github.com/dalemusser/estatehub/internal/app/store/saved"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (h *Handler) saved() *savedstore.Store {
	return savedstore.New(h.Client, h.DB, h.Log)
}

// ServeSaved returns the caller's saved listings in save order, each with
// its agent.
func (h *Handler) ServeSaved(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list saved properties")
	defer cancel()

	props, err := h.saved().List(ctx, actor.ID)
	if err != nil {
		respond.ServerError(w, h.Log, "list saved properties", err)
		return
	}
	views, err := propertystore.New(h.DB).Populate(ctx, props, propertystore.AgentCard)
	if err != nil {
		respond.ServerError(w, h.Log, "populate saved properties", err)
		return
	}
	respond.OK(w, respond.M{"count": len(views), "properties": views})
}

// ServeIsSaved reports whether the caller has saved the listing.
func (h *Handler) ServeIsSaved(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "propertyId"))
	if err != nil {
		respond.OK(w, respond.M{"isSaved": false})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check saved property")
	defer cancel()

	saved, err := h.saved().IsSaved(ctx, actor.ID, pid)
	if err != nil {
		respond.ServerError(w, h.Log, "check saved property", err)
		return
	}
	respond.OK(w, respond.M{"isSaved": saved})
}

// HandleSave bookmarks a listing. Saving twice is rejected.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "propertyId"))
	if err != nil {
		respond.NotFound(w, "Property not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "save property")
	defer cancel()

	err = h.saved().Save(ctx, actor.ID, pid)
	switch {
	case errors.Is(err, savedstore.ErrPropertyNotFound):
		respond.NotFound(w, "Property not found")
		return
	case errors.Is(err, savedstore.ErrAlreadySaved):
		respond.BadRequest(w, "Property already saved")
		return
	case errors.Is(err, savedstore.ErrUserNotFound):
		respond.NotFound(w, "User not found")
		return
	case err != nil:
		respond.ServerError(w, h.Log, "save property", err)
		return
	}

	h.Metrics.PropertySaved()
	h.Log.Debug("property saved", zap.String("user_id", actor.ID.Hex()), zap.String("property_id", pid.Hex()))
	respond.OK(w, respond.M{"message": "Property saved successfully"})
}

// HandleUnsave removes a bookmark. Removing one that is not there is
// rejected. A listing that was deleted since it was saved can still be
// removed.
func (h *Handler) HandleUnsave(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "propertyId"))
	if err != nil {
		respond.NotFound(w, "Property not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "unsave property")
	defer cancel()

	err = h.saved().Unsave(ctx, actor.ID, pid)
	switch {
	case errors.Is(err, savedstore.ErrNotSaved):
		respond.BadRequest(w, "Property not in saved list")
		return
	case errors.Is(err, savedstore.ErrUserNotFound):
		respond.NotFound(w, "User not found")
		return
	case err != nil:
		respond.ServerError(w, h.Log, "unsave property", err)
		return
	}
	respond.OK(w, respond.M{"message": "Property removed from saved list"})
}
