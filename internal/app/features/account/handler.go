// internal/app/features/account/handler.go
package account

import (
	"context"
	"net/http"

	loginstore "github.com/dalemusser/estatehub/internal/app/store/logins"
	"github.com/dalemusser/estatehub/internal/app/system/auth"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns registration, login, and self-service account handlers.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Tokens *auth.Manager
	Logins *ratelimit.LoginLimiter

	// AllowAdminSignup lets /register create admin accounts. Off in production.
	AllowAdminSignup bool
}

// NewHandler constructs a Handler. logins may be nil to disable throttling.
func NewHandler(db *mongo.Database, tokens *auth.Manager, logins *ratelimit.LoginLimiter, allowAdminSignup bool, logger *zap.Logger) *Handler {
	return &Handler{
		DB:               db,
		Log:              logger,
		Tokens:           tokens,
		Logins:           logins,
		AllowAdminSignup: allowAdminSignup,
	}
}

// recordLogin stores a login record. Failures are logged only.
func (h *Handler) recordLogin(ctx context.Context, r *http.Request, userID primitive.ObjectID, method string) {
	if err := loginstore.New(h.DB).CreateFrom(ctx, r, userID, method); err != nil {
		h.Log.Warn("record login", zap.String("user_id", userID.Hex()), zap.Error(err))
	}
}
