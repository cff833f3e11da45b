// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Every collection set is idempotent and
problems are aggregated so a single run reports all of them.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	sets := []struct {
		name   string
		models []mongo.IndexModel
	}{
		{"users", userIndexes()},
		{"properties", propertyIndexes()},
		{"appointments", appointmentIndexes()},
		{"login_records", loginRecordIndexes()},
	}

	var problems []string
	for _, s := range sets {
		if err := ensureIndexSet(ctx, db.Collection(s.name), s.models); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// agent directory: role + active, sorted by name
		{
			Keys: bson.D{
				{Key: "role", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "name_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_users_role_active_nameci"),
		},
		// prune job pulls deleted property ids from every list
		{
			Keys:    bson.D{{Key: "saved_properties", Value: 1}},
			Options: options.Index().SetName("idx_users_saved_properties"),
		},
	}
}

func propertyIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_properties_slug"),
		},
		// default listing order
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_properties_active_created"),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}, {Key: "price", Value: 1}},
			Options: options.Index().SetName("idx_properties_active_price"),
		},
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "location.city_ci", Value: 1},
				{Key: "location.area_ci", Value: 1},
			},
			Options: options.Index().SetName("idx_properties_active_city_area"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_properties_type_status"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}, {Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_properties_featured_active_created"),
		},
		{
			Keys:    bson.D{{Key: "agent", Value: 1}, {Key: "is_active", Value: 1}},
			Options: options.Index().SetName("idx_properties_agent_active"),
		},
	}
}

func appointmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "agent", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_appointments_agent_created"),
		},
		{
			Keys:    bson.D{{Key: "client", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_appointments_client_created"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_appointments_status_created"),
		},
		{
			Keys:    bson.D{{Key: "property", Value: 1}},
			Options: options.Index().SetName("idx_appointments_property"),
		},
	}
}

// loginRetention is how long login records are kept.
const loginRetention = 90 * 24 * time.Hour

func loginRecordIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_login_records_user_created"),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().
				SetName("ttl_login_records_created").
				SetExpireAfterSeconds(int32(loginRetention / time.Second)),
		},
	}
}

/* -------------------------------------------------------------------------- */
/* Reconcile desired indexes against what the collection already has         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(p *bool) bool { return p != nil && *p }

// isDuplicateKeyErr recognizes E11000 across driver error shapes.
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet makes coll carry every model. An index with the same keys
// is reused when its uniqueness and name match, otherwise it is dropped and
// recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A missing collection lists as an error on some servers; creating
		// the first index creates the collection.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		if err := ensureOne(ctx, coll, m, existing); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureOne(ctx context.Context, coll *mongo.Collection, m mongo.IndexModel, existing map[string]existingIndex) error {
	var name string
	var unique bool
	if m.Options != nil {
		if m.Options.Name != nil {
			name = *m.Options.Name
		}
		unique = boolVal(m.Options.Unique)
	}
	sig := keySig(m.Keys.(bson.D))
	start := time.Now()
	log := zap.L().With(
		zap.String("collection", coll.Name()),
		zap.String("name", name),
		zap.String("keys", sig),
		zap.Bool("unique", unique))

	if ex, ok := existing[sig]; ok {
		if boolVal(ex.Unique) == unique && (name == "" || ex.Name == name) {
			log.Debug("reusing existing index")
			return nil
		}
		log.Info("replacing index with mismatched options", zap.String("existing_name", ex.Name))
		if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
			return fmt.Errorf("%s(%s): drop %s: %w", coll.Name(), name, ex.Name, err)
		}
	}

	if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
		if unique && isDuplicateKeyErr(err) {
			return fmt.Errorf("%s(%s): cannot create unique index on [%s], duplicates present", coll.Name(), name, sig)
		}
		log.Warn("index ensure failed", zap.Error(err))
		return fmt.Errorf("%s(%s): %w", coll.Name(), name, err)
	}
	log.Info("index ensured", zap.Duration("took", time.Since(start)))
	return nil
}
