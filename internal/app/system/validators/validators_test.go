package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/validators"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	return db
}

func TestEnsureAll_IdempotentAndCreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatal(err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "properties", "appointments"} {
		if !have[want] {
			t.Errorf("collection %q missing", want)
		}
	}
}

func TestUsersValidator(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	users := db.Collection("users")

	valid := bson.M{
		"name": "Ada", "email": "ada@example.com", "password_hash": "x",
		"role": "agent", "is_active": true, "saved_properties": bson.A{},
	}
	if _, err := users.InsertOne(ctx, valid); err != nil {
		t.Errorf("valid user rejected: %v", err)
	}

	tests := []struct {
		name string
		doc  bson.M
	}{
		{"missing fields", bson.M{"name": "x"}},
		{"bad role", bson.M{"name": "B", "email": "b@x.com", "password_hash": "x", "role": "superuser", "is_active": true}},
		{"blank name", bson.M{"name": "  ", "email": "c@x.com", "password_hash": "x", "role": "client", "is_active": true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := users.InsertOne(ctx, tc.doc); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPropertiesValidator(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	props := db.Collection("properties")

	doc := func(mut func(bson.M)) bson.M {
		d := bson.M{
			"title": "Villa", "slug": "villa-1", "type": "Villa", "status": "For Sale",
			"price": 1000.0, "agent": primitive.NewObjectID(), "views": int64(0), "saves": int64(0),
			"location": bson.M{"address": "1 Way", "city": "Lagos", "state": "Lagos", "area": "Lekki"},
		}
		if mut != nil {
			mut(d)
		}
		return d
	}

	if _, err := props.InsertOne(ctx, doc(nil)); err != nil {
		t.Errorf("valid property rejected: %v", err)
	}
	for name, mut := range map[string]func(bson.M){
		"negative price": func(d bson.M) { d["price"] = -1.0; d["slug"] = "a" },
		"bad type":       func(d bson.M) { d["type"] = "Castle"; d["slug"] = "b" },
		"negative saves": func(d bson.M) { d["saves"] = int64(-1); d["slug"] = "c" },
	} {
		if _, err := props.InsertOne(ctx, doc(mut)); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestAppointmentsValidator(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	appts := db.Collection("appointments")

	base := bson.M{
		"property": primitive.NewObjectID(), "client": primitive.NewObjectID(), "agent": primitive.NewObjectID(),
		"appointment_date": time.Now(), "appointment_time": "10:00", "type": "viewing", "status": "pending",
	}
	if _, err := appts.InsertOne(ctx, base); err != nil {
		t.Errorf("valid appointment rejected: %v", err)
	}

	bad := bson.M{}
	for k, v := range base {
		bad[k] = v
	}
	bad["status"] = "archived"
	if _, err := appts.InsertOne(ctx, bad); err == nil {
		t.Error("unknown status should be rejected")
	}
}
