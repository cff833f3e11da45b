package appointmentstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("appointment not found")
	errBadStatus = errors.New(`status must be "pending"|"confirmed"|"cancelled"|"completed"`)
)

type Store struct {
	c     *mongo.Collection
	props *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("appointments"),
		props: db.Collection("properties"),
		users: db.Collection("users"),
	}
}

// Create inserts a new appointment in the pending state.
func (s *Store) Create(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	a.ID = primitive.NewObjectID()
	a.Status = models.AppointmentPending
	a.AppointmentDate = a.AppointmentDate.UTC()
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Appointment{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListFilter narrows List. Nil IDs and an empty status match everything.
type ListFilter struct {
	AgentID  *primitive.ObjectID
	ClientID *primitive.ObjectID
	Status   models.AppointmentStatus
}

// List returns matching appointments, most recently booked first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if f.AgentID != nil {
		filter["agent"] = *f.AgentID
	}
	if f.ClientID != nil {
		filter["client"] = *f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Appointment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets the status and returns the status it replaced along
// with the updated appointment. Any status may follow any other.
func (s *Store) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AppointmentStatus) (models.AppointmentStatus, *models.Appointment, error) {
	if !status.Valid() {
		return "", nil, errBadStatus
	}
	now := time.Now().UTC()

	var before models.Appointment
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": now}},
		opts,
	).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	after := before
	after.Status = status
	after.UpdatedAt = now
	return before.Status, &after, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Populate attaches property, client and agent summaries. References that
// no longer resolve keep only their ID.
func (s *Store) Populate(ctx context.Context, appts []models.Appointment) ([]models.AppointmentView, error) {
	out := make([]models.AppointmentView, 0, len(appts))
	if len(appts) == 0 {
		return out, nil
	}

	var propIDs, userIDs []primitive.ObjectID
	for _, a := range appts {
		propIDs = append(propIDs, a.PropertyID)
		userIDs = append(userIDs, a.ClientID, a.AgentID)
	}

	props := map[primitive.ObjectID]models.PropertyRef{}
	propProj := bson.M{"title": 1, "location": 1, "images": 1, "price": 1}
	if err := loadInto(ctx, s.props, propIDs, propProj, func(cur *mongo.Cursor) error {
		var p models.PropertyRef
		if err := cur.Decode(&p); err != nil {
			return err
		}
		props[p.ID] = p
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}

	people := map[primitive.ObjectID]models.PersonRef{}
	userProj := bson.M{"name": 1, "email": 1, "phone": 1}
	if err := loadInto(ctx, s.users, userIDs, userProj, func(cur *mongo.Cursor) error {
		var p models.PersonRef
		if err := cur.Decode(&p); err != nil {
			return err
		}
		people[p.ID] = p
		return nil
	}); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	ref := func(id primitive.ObjectID) models.PersonRef {
		if p, ok := people[id]; ok {
			return p
		}
		return models.PersonRef{ID: id}
	}
	for _, a := range appts {
		prop, ok := props[a.PropertyID]
		if !ok {
			prop = models.PropertyRef{ID: a.PropertyID}
		}
		out = append(out, models.AppointmentView{
			Appointment: a,
			Property:    prop,
			Client:      ref(a.ClientID),
			Agent:       ref(a.AgentID),
		})
	}
	return out, nil
}

func loadInto(ctx context.Context, c *mongo.Collection, ids []primitive.ObjectID, proj bson.M, each func(*mongo.Cursor) error) error {
	cur, err := c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(proj))
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		if err := each(cur); err != nil {
			return err
		}
	}
	return cur.Err()
}
