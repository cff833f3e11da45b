// internal/app/features/properties/delete.go
package properties

import (
	"errors"
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleDelete removes a listing and, best effort, its stored images.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	id, ok := propertyID(r)
	if !ok {
		respond.NotFound(w, "Property not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete property")
	defer cancel()

	store := propertystore.New(h.DB)
	p, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "Property not found")
			return
		}
		respond.ServerError(w, h.Log, "load property for delete", err)
		return
	}
	if !authz.CanManageProperty(actor, *p) {
		respond.Forbidden(w, "Not authorized to delete this property")
		return
	}

	if err := store.Delete(ctx, id); err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "Property not found")
			return
		}
		respond.ServerError(w, h.Log, "delete property", err)
		return
	}
	h.Cache.Invalidate(ctx)

	if h.Images != nil {
		for _, img := range p.Images {
			if img.PublicID == "" {
				continue
			}
			if err := h.Images.Delete(ctx, img.PublicID); err != nil {
				h.Log.Warn("delete listing image",
					zap.String("property_id", id.Hex()),
					zap.String("public_id", img.PublicID),
					zap.Error(err))
			}
		}
	}

	h.Events.Publish(ctx, events.PropertyDeleted, propertyEvent{
		PropertyID: id.Hex(),
		AgentID:    p.AgentID.Hex(),
	})
	h.Log.Info("property deleted",
		zap.String("property_id", id.Hex()),
		zap.String("by", actor.ID.Hex()))

	respond.OK(w, respond.M{"message": "Property deleted successfully"})
}
