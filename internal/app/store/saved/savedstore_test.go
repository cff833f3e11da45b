package savedstore_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	savedstore "github.com/dalemusser/estatehub/internal/app/store/saved"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func saves(t *testing.T, db *mongo.Database, id primitive.ObjectID) int64 {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	var p models.Property
	if err := db.Collection("properties").FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		t.Fatal(err)
	}
	return p.Saves
}

func newStore(db *mongo.Database) *savedstore.Store {
	return savedstore.New(db.Client(), db, zap.NewNop())
}

func TestSaveUnsave(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	agent := fx.CreateAgent(ctx, "Amy", "amy@x.com")
	client := fx.CreateClient(ctx, "Cal", "cal@x.com")
	p := fx.CreateProperty(ctx, agent.ID, "Flat", nil)

	if err := store.Save(ctx, client.ID, p.ID); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := saves(t, db, p.ID); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
	if ok, _ := store.IsSaved(ctx, client.ID, p.ID); !ok {
		t.Error("IsSaved = false after save")
	}

	if err := store.Save(ctx, client.ID, p.ID); !errors.Is(err, savedstore.ErrAlreadySaved) {
		t.Errorf("second Save err = %v", err)
	}
	if got := saves(t, db, p.ID); got != 1 {
		t.Errorf("saves after duplicate = %d, want 1", got)
	}

	if err := store.Unsave(ctx, client.ID, p.ID); err != nil {
		t.Fatalf("Unsave: %v", err)
	}
	if got := saves(t, db, p.ID); got != 0 {
		t.Errorf("saves = %d, want 0", got)
	}
	if err := store.Unsave(ctx, client.ID, p.ID); !errors.Is(err, savedstore.ErrNotSaved) {
		t.Errorf("second Unsave err = %v", err)
	}
}

func TestSave_Errors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	agent := fx.CreateAgent(ctx, "Amy", "amy@x.com")
	p := fx.CreateProperty(ctx, agent.ID, "Flat", nil)

	if err := store.Save(ctx, agent.ID, primitive.NewObjectID()); !errors.Is(err, savedstore.ErrPropertyNotFound) {
		t.Errorf("missing property err = %v", err)
	}
	if err := store.Save(ctx, primitive.NewObjectID(), p.ID); !errors.Is(err, savedstore.ErrUserNotFound) {
		t.Errorf("missing user err = %v", err)
	}
}

func TestUnsave_CounterFloorsAtZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	agent := fx.CreateAgent(ctx, "Amy", "amy@x.com")
	client := fx.CreateClient(ctx, "Cal", "cal@x.com")
	p := fx.CreateProperty(ctx, agent.ID, "Flat", nil)

	// Reference exists but the counter already drifted to zero.
	_, _ = db.Collection("users").UpdateOne(ctx, bson.M{"_id": client.ID},
		bson.M{"$push": bson.M{"saved_properties": p.ID}})

	if err := store.Unsave(ctx, client.ID, p.ID); err != nil {
		t.Fatal(err)
	}
	if got := saves(t, db, p.ID); got != 0 {
		t.Errorf("saves = %d, want 0", got)
	}
}

func TestSave_ConcurrentDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	agent := fx.CreateAgent(ctx, "Amy", "amy@x.com")
	client := fx.CreateClient(ctx, "Cal", "cal@x.com")
	p := fx.CreateProperty(ctx, agent.ID, "Flat", nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Save(context.Background(), client.ID, p.ID)
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	if ok != 1 {
		t.Errorf("%d concurrent saves succeeded, want 1", ok)
	}
	ids, _ := store.SavedIDs(ctx, client.ID)
	if len(ids) != 1 {
		t.Errorf("saved list = %v", ids)
	}
	if got := saves(t, db, p.ID); got != 1 {
		t.Errorf("saves = %d, want 1", got)
	}
}

func TestList_OrderAndDanglingPrune(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	agent := fx.CreateAgent(ctx, "Amy", "amy@x.com")
	client := fx.CreateClient(ctx, "Cal", "cal@x.com")
	a := fx.CreateProperty(ctx, agent.ID, "A", nil)
	b := fx.CreateProperty(ctx, agent.ID, "B", nil)
	c := fx.CreateProperty(ctx, agent.ID, "C", nil)

	for _, id := range []primitive.ObjectID{b.ID, a.ID, c.ID} {
		if err := store.Save(ctx, client.ID, id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.Collection("properties").DeleteOne(ctx, bson.M{"_id": a.ID}); err != nil {
		t.Fatal(err)
	}

	list, err := store.List(ctx, client.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != b.ID || list[1].ID != c.ID {
		t.Fatalf("List = %v", list)
	}

	ids, _ := store.SavedIDs(ctx, client.ID)
	if len(ids) != 2 {
		t.Errorf("dangling reference not pruned: %v", ids)
	}
}

func TestPruneHelpers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := newStore(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u1 := fx.CreateClient(ctx, "One", "one@x.com")
	u2 := fx.CreateClient(ctx, "Two", "two@x.com")
	gone, kept := primitive.NewObjectID(), primitive.NewObjectID()
	users := db.Collection("users")
	_, _ = users.UpdateOne(ctx, bson.M{"_id": u1.ID}, bson.M{"$set": bson.M{"saved_properties": bson.A{gone, kept}}})
	_, _ = users.UpdateOne(ctx, bson.M{"_id": u2.ID}, bson.M{"$set": bson.M{"saved_properties": bson.A{gone}}})

	distinct, err := store.DistinctSavedIDs(ctx)
	if err != nil || len(distinct) != 2 {
		t.Fatalf("DistinctSavedIDs = %v, %v", distinct, err)
	}

	n, err := store.PullSavedEverywhere(ctx, []primitive.ObjectID{gone})
	if err != nil || n != 2 {
		t.Errorf("PullSavedEverywhere = %d, %v", n, err)
	}
	ids, _ := store.SavedIDs(ctx, u1.ID)
	if len(ids) != 1 || ids[0] != kept {
		t.Errorf("u1 saved = %v", ids)
	}
}
