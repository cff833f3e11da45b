// internal/app/features/properties/list.go
package properties

import (
	"net/http"

	propertystore "github.com/dalemusser/estatehub/internal/app/store/properties"
	"github.com/dalemusser/estatehub/internal/app/system/respond"
	"github.com/dalemusser/estatehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServeSearch is the public catalog query: filters, sort, and one page of
// results with the total match count. Results are cached per query until
// the next listing change.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	params := propertystore.ParseSearch(r.URL.Query())
	key := params.CacheKey()

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "search properties")
	defer cancel()

	var page searchPage
	gen := int64(-1)
	if h.Cache != nil {
		var hit bool
		hit, gen = h.Cache.Get(ctx, key, &page)
		h.Metrics.CacheLookup(hit)
		if hit {
			respond.OK(w, page.fields())
			return
		}
	}

	res, err := propertystore.New(h.DB).Search(ctx, params)
	if err != nil {
		respond.ServerError(w, h.Log, "search properties", err)
		return
	}
	page = searchPage{
		Count:       len(res.Properties),
		Total:       res.Total,
		Pages:       params.Page.Pages(res.Total),
		CurrentPage: params.Page.Number,
		Properties:  res.Properties,
	}
	h.Cache.Set(ctx, gen, key, page)
	respond.OK(w, page.fields())
}

// ServeFeatured returns the landing-page listings.
func (h *Handler) ServeFeatured(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "featured properties")
	defer cancel()

	props, err := propertystore.New(h.DB).Featured(ctx, propertystore.FeaturedLimit)
	if err != nil {
		respond.ServerError(w, h.Log, "featured properties", err)
		return
	}
	respond.OK(w, respond.M{"count": len(props), "properties": props})
}

// ServeByAgent lists one agent's active listings. An unknown or malformed
// agent ID yields an empty list.
func (h *Handler) ServeByAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "agentId"))
	if err != nil {
		respond.OK(w, respond.M{"count": 0, "properties": []any{}})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "agent properties")
	defer cancel()

	props, err := propertystore.New(h.DB).ByAgent(ctx, agentID)
	if err != nil {
		respond.ServerError(w, h.Log, "agent properties", err)
		return
	}
	respond.OK(w, respond.M{"count": len(props), "properties": props})
}
