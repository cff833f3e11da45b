// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/estatehub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the collections if missing and attaches JSON-Schema
// validators. Servers that reject collMod validators are logged and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure("users", usersSchema())
	ensure("properties", propertiesSchema())
	ensure("appointments", appointmentsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrMatches(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

func enumOf[T ~string](vals []T) bson.A {
	out := make(bson.A, 0, len(vals))
	for _, v := range vals {
		out = append(out, string(v))
	}
	return out
}

var nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"name", "email", "password_hash", "role", "is_active"},
			"properties": bson.M{
				"name":             nonBlank,
				"email":            nonBlank,
				"password_hash":    nonBlank,
				"role":             bson.M{"enum": enumOf([]models.Role{models.RoleClient, models.RoleAgent, models.RoleAdmin})},
				"is_active":        bson.M{"bsonType": "bool"},
				"saved_properties": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "objectId"}},
			},
		},
	}
}

func propertiesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "slug", "type", "status", "price", "location", "agent"},
			"properties": bson.M{
				"title":  nonBlank,
				"slug":   nonBlank,
				"type":   bson.M{"enum": enumOf(models.PropertyTypes)},
				"status": bson.M{"enum": enumOf(models.ListingStatuses)},
				"price":  bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}, "minimum": 0},
				"agent":  bson.M{"bsonType": "objectId"},
				"views":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"saves":  bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0},
				"location": bson.M{
					"bsonType": "object",
					"required": bson.A{"address", "city", "state", "area"},
				},
			},
		},
	}
}

func appointmentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"property", "client", "agent", "appointment_date", "appointment_time", "type", "status"},
			"properties": bson.M{
				"property":         bson.M{"bsonType": "objectId"},
				"client":           bson.M{"bsonType": "objectId"},
				"agent":            bson.M{"bsonType": "objectId"},
				"appointment_date": bson.M{"bsonType": "date"},
				"appointment_time": nonBlank,
				"type": bson.M{"enum": enumOf([]models.AppointmentType{
					models.AppointmentViewing, models.AppointmentConsultation, models.AppointmentInspection,
				})},
				"status": bson.M{"enum": enumOf([]models.AppointmentStatus{
					models.AppointmentPending, models.AppointmentConfirmed,
					models.AppointmentCancelled, models.AppointmentCompleted,
				})},
			},
		},
	}
}
