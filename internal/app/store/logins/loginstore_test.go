package loginstore_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	loginstore "github.com/dalemusser/estatehub/internal/app/store/logins"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	err := store.Create(ctx, models.LoginRecord{
		UserID: userID,
		IP:     "192.168.1.1",
		Method: models.LoginMethodPassword,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var found models.LoginRecord
	err = db.Collection("login_records").FindOne(ctx, bson.M{"user_id": userID}).Decode(&found)
	if err != nil {
		t.Fatalf("failed to find login record: %v", err)
	}
	if found.IP != "192.168.1.1" {
		t.Errorf("IP: got %q, want %q", found.IP, "192.168.1.1")
	}
	if found.Method != models.LoginMethodPassword {
		t.Errorf("Method: got %q", found.Method)
	}
	if found.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_CreateFrom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	req.Header.Set("User-Agent", strings.Repeat("a", 400))

	userID := primitive.NewObjectID()
	if err := store.CreateFrom(ctx, req, userID, models.LoginMethodRegister); err != nil {
		t.Fatalf("CreateFrom failed: %v", err)
	}

	recs, err := store.Recent(ctx, userID, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].IP != "203.0.113.7" {
		t.Errorf("IP: got %q", recs[0].IP)
	}
	if len(recs[0].UserAgent) != 256 {
		t.Errorf("user agent length %d, want 256", len(recs[0].UserAgent))
	}
}

func TestStore_Recent_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	base := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := models.LoginRecord{
			UserID:    userID,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			Method:    models.LoginMethodPassword,
		}
		if err := store.Create(ctx, rec); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	if err := store.Create(ctx, models.LoginRecord{UserID: primitive.NewObjectID()}); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Recent(ctx, userID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if !recs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("first record at %v, want newest", recs[0].CreatedAt)
	}
}
