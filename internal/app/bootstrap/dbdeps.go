// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/estatehub/internal/app/system/events"
	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/app/system/mailer"
	"github.com/dalemusser/estatehub/internal/app/system/metrics"
	"github.com/dalemusser/estatehub/internal/app/system/ratelimit"
	"github.com/dalemusser/estatehub/internal/app/system/searchcache"
	"github.com/dalemusser/estatehub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Services is filled in by Startup. WAFFLE passes DBDeps by value, so
	// it is a pointer shared by the later hooks.
	Services *Services
}

// Services are the process-wide collaborators built during Startup and
// handed to feature handlers in BuildHandler.
type Services struct {
	Mail      mailer.Sender
	Images    imagestore.Store
	Cache     *searchcache.Cache // nil when Redis is not configured
	Events    events.Publisher
	Metrics   *metrics.Metrics
	Scheduler *workers.Scheduler

	Logins  *ratelimit.LoginLimiter
	Contact *ratelimit.Limiter
}
