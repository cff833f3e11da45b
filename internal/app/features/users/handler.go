// internal/app/features/users/handler.go
package users

import (
	"github.com/dalemusser/estatehub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the agent directory and the caller's saved list.
type Handler struct {
	Client  *mongo.Client // for transactions; nil runs saved-list writes without one
	DB      *mongo.Database
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func NewHandler(client *mongo.Client, db *mongo.Database, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		DB:      db,
		Log:     logger,
		Metrics: m,
	}
}
