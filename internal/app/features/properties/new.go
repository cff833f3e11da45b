// internal/app/features/properties/new.go
package properties

import (
	"net/http"
	"time"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/authz"
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/inputval"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate lists a new property owned by the caller.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Not authorized to access this route")
		return
	}
	if !authz.CanCreateProperty(actor) {
		respond.Forbidden(w, "Only agents and admins can list properties")
		return
	}

	var in createInput
	if err := respond.Decode(w, r, &in); err != nil {
		respond.BadRequest(w, "Invalid request body")
		return
	}
	res := inputval.Validate(in)
	checkYearBuilt(res, in.Details.YearBuilt, time.Now())
	if res.HasErrors() {
		respond.Validation(w, res)
		return
	}
	if in.Featured != nil && *in.Featured && !authz.CanFeatureProperty(actor) {
		respond.Forbidden(w, "Only admins can feature properties")
		return
	}

	p := models.Property{
		Title:       in.Title,
		Description: in.Description,
		Type:        models.PropertyType(in.Type),
		Status:      models.StatusForSale,
		Price:       *in.Price,
		Location:    in.Location.model(),
		Details:     in.Details.model(),
		Features:    in.Features,
		Images:      images(in.Images),
		AgentID:     actor.ID,
		IsActive:    true,
	}
	if in.Status != "" {
		p.Status = models.ListingStatus(in.Status)
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create property")
	defer cancel()

	store := propertystore.New(h.DB)
	created, err := store.Create(ctx, p)
	if err != nil {
		respond.ServerError(w, h.Log, "create property", err)
		return
	}
	h.Cache.Invalidate(ctx)

	views, err := store.Populate(ctx, []models.Property{created}, propertystore.AgentCard)
	if err != nil {
		respond.ServerError(w, h.Log, "populate created property", err)
		return
	}

	h.Events.Publish(ctx, events.PropertyCreated, propertyEvent{
		PropertyID: created.ID.Hex(),
		AgentID:    created.AgentID.Hex(),
		Title:      created.Title,
		City:       created.Location.City,
	})
	h.Log.Info("property created",
		zap.String("property_id", created.ID.Hex()),
		zap.String("agent_id", actor.ID.Hex()))

	respond.Created(w, respond.M{
		"message":  "Property created successfully",
		"property": views[0],
	})
}
