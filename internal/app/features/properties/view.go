// internal/app/features/properties/view.go
package properties

import (
	"errors"
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func propertyID(r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return id, err == nil
}

// ServeProperty returns one listing with its agent's full profile and
// counts the view.
func (h *Handler) ServeProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := propertyID(r)
	if !ok {
		respond.NotFound(w, "Property not found")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "view property")
	defer cancel()

	view, err := propertystore.New(h.DB).View(ctx, id)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "Property not found")
			return
		}
		respond.ServerError(w, h.Log, "view property", err)
		return
	}
	respond.OK(w, respond.M{"property": view})
}
