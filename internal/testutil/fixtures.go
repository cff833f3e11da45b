package testutil

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// FixturePassword is the plaintext password of every fixture user.
const FixturePassword = "secret123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures inserts test documents directly, bypassing the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
	n  int
}

func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

func (f *Fixtures) DB() *mongo.Database { return f.db }

// CreateUser inserts an active user with FixturePassword.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, role models.Role) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(FixturePassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		Email:           email,
		PasswordHash:    string(hash),
		Phone:           "+2348012345678",
		Role:            role,
		Avatar:          models.DefaultAvatar,
		SavedProperties: []primitive.ObjectID{},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if role == models.RoleAgent {
		u.AgentDetails = &models.AgentDetails{ExperienceYears: 5, Rating: 4.5}
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create fixture user: %v", err)
	}
	return u
}

func (f *Fixtures) CreateClient(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleClient)
}

func (f *Fixtures) CreateAgent(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAgent)
}

func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleAdmin)
}

// CreateProperty inserts an active listing owned by agentID. mutate, when
// non-nil, adjusts the document before insert.
func (f *Fixtures) CreateProperty(ctx context.Context, agentID primitive.ObjectID, title string, mutate func(*models.Property)) models.Property {
	f.t.Helper()

	f.n++
	now := time.Now().UTC().Add(time.Duration(f.n) * time.Millisecond)
	p := models.Property{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Slug:        fmt.Sprintf("fixture-%d-%s", f.n, primitive.NewObjectID().Hex()),
		Description: "A fixture listing called " + title,
		Type:        models.TypeApartment,
		Status:      models.StatusForSale,
		Price:       100000,
		Location: models.Location{
			Address: "1 Test Way",
			City:    "Lagos",
			State:   "Lagos",
			Area:    "Lekki",
		},
		Details:   models.Details{Bedrooms: 2, Bathrooms: 2, Size: 120},
		Features:  []string{},
		Images:    []models.Image{},
		AgentID:   agentID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if mutate != nil {
		mutate(&p)
	}
	p.Location.CityCI = text.Fold(p.Location.City)
	p.Location.AreaCI = text.Fold(p.Location.Area)

	if _, err := f.db.Collection("properties").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create fixture property: %v", err)
	}
	return p
}

// CreateAppointment inserts a pending viewing of p booked by client.
func (f *Fixtures) CreateAppointment(ctx context.Context, p models.Property, client models.User) models.Appointment {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Appointment{
		ID:              primitive.NewObjectID(),
		PropertyID:      p.ID,
		ClientID:        client.ID,
		AgentID:         p.AgentID,
		AppointmentDate: now.Add(72 * time.Hour).Truncate(time.Millisecond),
		AppointmentTime: "10:00",
		Type:            models.AppointmentViewing,
		Status:          models.AppointmentPending,
		ClientContact:   models.ClientContact{Name: client.Name, Email: client.Email, Phone: client.Phone},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := f.db.Collection("appointments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("create fixture appointment: %v", err)
	}
	return a
}
