// internal/app/features/properties/handler.go
package properties

import (
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/app/system/metrics"
	"github.com/dalemusser/estatehub/internal/app/system/searchcache"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the listing catalog endpoints.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	Cache   *searchcache.Cache // nil disables search caching
	Events  events.Publisher
	Images  imagestore.Store // nil skips image cleanup on delete
	Metrics *metrics.Metrics
}

func NewHandler(db *mongo.Database, cache *searchcache.Cache, pub events.Publisher, images imagestore.Store, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Handler{
		DB:      db,
		Log:     logger,
		Cache:   cache,
		Events:  pub,
		Images:  images,
		Metrics: m,
	}
}
