// internal/app/features/properties/edit.go
package properties

import (
	"errors"
	"net/http"
	"time"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
)

// HandleUpdate edits a listing. Existence is checked before ownership, so a
// missing listing is 404 for everyone.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "update property")
	defer cancel()

	store := propertystore.New(h.DB)
	cur, err := store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "Property not found")
			return
		}
		respond.ServerError(w, h.Log, "load property for update", err)
		return
	}
	if !authz.CanManageProperty(actor, *cur) {
		respond.Forbidden(w, "Not authorized to update this property")
		return
	}

	var in updateInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	res := inputval.Validate(in)
	if in.Details != nil {
		checkYearBuilt(res, in.Details.YearBuilt, time.Now())
	}
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	if in.Featured != nil && *in.Featured != cur.Featured && !authz.CanFeatureProperty(actor) {
		respond.Forbidden(w, "Only admins can feature properties")
		return
	}

	upd := propertystore.Update{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Features:    in.Features,
		Featured:    in.Featured,
		IsActive:    in.IsActive,
	}
	if in.Type != nil {
		t := models.PropertyType(*in.Type)
		upd.Type = &t
	}
	if in.Status != nil {
		s := models.ListingStatus(*in.Status)
		upd.Status = &s
	}
	if in.Location != nil {
		loc := in.Location.model()
		upd.Location = &loc
	}
	if in.Details != nil {
		d := in.Details.model()
		upd.Details = &d
	}
	if in.Images != nil {
		imgs := images(*in.Images)
		upd.Images = &imgs
	}

	updated, err := store.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, propertystore.ErrNotFound) {
			respond.NotFound(w, "Property not found")
			return
		}
		respond.ServerError(w, h.Log, "update property", err)
		return
	}
	h.Cache.Invalidate(ctx)

	views, err := store.Populate(ctx, []models.Property{*updated}, propertystore.AgentCard)
	if err != nil {
		respond.ServerError(w, h.Log, "populate updated property", err)
		return
	}
	respond.OK(w, respond.M{
		"message":  "Property updated successfully",
		"property": views[0],
	})
}
