package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/estatehub/internal/app/system/normalize"
	"github.com/dalemusser/estatehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when another account already uses the email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "client"|"agent"|"admin"`)
	errShortPassword  = errors.New("password must be at least 6 characters")
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// bcryptCost is a variable so tests can lower it.
var bcryptCost = bcrypt.DefaultCost

func hashPassword(pw string) (string, error) {
	if len(pw) < MinPasswordLen {
		return "", errShortPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Create registers u with the given plaintext password. Email is
// normalized, role defaults to client, and the account starts active with
// an empty saved list.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleClient
	}
	if !u.Role.Valid() {
		return models.User{}, errBadRole
	}
	if u.Avatar == "" {
		u.Avatar = models.DefaultAvatar
	}
	if u.Role == models.RoleAgent && u.AgentDetails == nil {
		u.AgentDetails = &models.AgentDetails{}
	}
	u.SavedProperties = []primitive.ObjectID{}
	u.IsActive = true

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by normalized email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckPassword reports whether pw matches u's stored hash.
func CheckPassword(u *models.User, pw string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pw)) == nil
}

// DetailsUpdate holds self-service profile changes. Nil fields are left
// unchanged.
type DetailsUpdate struct {
	Name         *string
	Email        *string
	Phone        *string
	Bio          *string
	Avatar       *string
	AgentDetails *models.AgentDetails
}

// UpdateDetails applies upd and returns the updated user.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, upd DetailsUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["name"] = name
		set["name_ci"] = text.Fold(name)
	}
	if upd.Email != nil {
		set["email"] = normalize.Email(*upd.Email)
	}
	if upd.Phone != nil {
		set["phone"] = *upd.Phone
	}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Avatar != nil {
		set["avatar"] = *upd.Avatar
	}
	if upd.AgentDetails != nil {
		set["agent_details"] = upd.AgentDetails
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// SetPassword replaces the password hash.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

var agentProjection = bson.M{"password_hash": 0, "saved_properties": 0}

// ListAgents returns active agents ordered by name.
func (s *Store) ListAgents(ctx context.Context) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(agentProjection)
	cur, err := s.c.Find(ctx, bson.M{"role": models.RoleAgent, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAgent loads an active agent. Non-agents and deactivated accounts
// report mongo.ErrNoDocuments.
func (s *Store) GetAgent(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	filter := bson.M{"_id": id, "role": models.RoleAgent, "is_active": true}
	if err := s.c.FindOne(ctx, filter, options.FindOne().SetProjection(agentProjection)).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// PromoteToAdmin sets role=admin on the account with email. It reports
// whether a user was found and whether it changed.
func (s *Store) PromoteToAdmin(ctx context.Context, email string) (found, changed bool, err error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, false, err
	}
	return res.MatchedCount > 0, res.ModifiedCount > 0, nil
}
