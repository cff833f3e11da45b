package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoURIEnv points tests at an existing server instead of a container.
const MongoURIEnv = "ESTATEHUB_TEST_MONGO_URI"

var (
	shared     *mongo.Client
	sharedErr  error
	sharedOnce sync.Once
)

// client returns a process-wide client. The container, when one is
// started, lives until the test binary exits.
func client() (*mongo.Client, error) {
	sharedOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		uri := os.Getenv(MongoURIEnv)
		if uri == "" {
			container, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
			if err != nil {
				sharedErr = fmt.Errorf("start mongo container: %w", err)
				return
			}
			uri, err = container.ConnectionString(ctx)
			if err != nil {
				sharedErr = fmt.Errorf("container connection string: %w", err)
				return
			}
			if !strings.Contains(uri, "directConnection") {
				sep := "?"
				if strings.Contains(uri, "?") {
					sep = "&"
				}
				uri += sep + "directConnection=true"
			}
		}

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			sharedErr = err
			return
		}
		if err := c.Ping(ctx, nil); err != nil {
			sharedErr = err
			return
		}
		shared = c
	})
	return shared, sharedErr
}

// SetupTestDB returns a fresh database that is dropped when the test ends.
// The test is skipped when no MongoDB is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB test in -short mode")
	}

	c, err := client()
	if err != nil {
		t.Skipf("MongoDB unavailable: %v", err)
	}

	db := c.Database("estatehub_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		ctx, cancel := TestContext()
		defer cancel()
		_ = db.Drop(ctx)
	})
	return db
}

// TestContext returns a context suitable for a single test operation.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
