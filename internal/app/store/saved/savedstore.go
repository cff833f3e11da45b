// Package savedstore maintains the relation between users and the
// properties they bookmarked, together with each property's save counter.
package savedstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/estatehub/internal/app/system/txn"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrAlreadySaved     = errors.New("property already saved")
	ErrNotSaved         = errors.New("property not in saved list")
	ErrUserNotFound     = errors.New("user not found")
)

type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	props  *mongo.Collection
	log    *zap.Logger
}

// New builds the store. client may be nil, in which case the list update
// and counter update run without a transaction.
func New(client *mongo.Client, db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		client: client,
		users:  db.Collection("users"),
		props:  db.Collection("properties"),
		log:    logger,
	}
}

// Save appends propertyID to the user's list and bumps the property's save
// counter. The $ne guard makes a duplicate save fail even when two
// requests race.
func (s *Store) Save(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	return txn.Run(ctx, s.client, s.log, func(ctx context.Context) error {
		n, err := s.props.CountDocuments(ctx, bson.M{"_id": propertyID}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("check property: %w", err)
		}
		if n == 0 {
			return ErrPropertyNotFound
		}

		res, err := s.users.UpdateOne(ctx,
			bson.M{"_id": userID, "saved_properties": bson.M{"$ne": propertyID}},
			bson.M{"$push": bson.M{"saved_properties": propertyID}},
		)
		if err != nil {
			return fmt.Errorf("push saved property: %w", err)
		}
		if res.MatchedCount == 0 {
			return s.missingUserOr(ctx, userID, ErrAlreadySaved)
		}

		if _, err := s.props.UpdateOne(ctx,
			bson.M{"_id": propertyID},
			bson.M{"$inc": bson.M{"saves": 1}},
		); err != nil {
			return fmt.Errorf("increment saves: %w", err)
		}
		return nil
	})
}

// Unsave removes propertyID from the user's list and decrements the save
// counter without letting it go below zero. A deleted property is still
// removable from the list.
func (s *Store) Unsave(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	return txn.Run(ctx, s.client, s.log, func(ctx context.Context) error {
		res, err := s.users.UpdateOne(ctx,
			bson.M{"_id": userID, "saved_properties": propertyID},
			bson.M{"$pull": bson.M{"saved_properties": propertyID}},
		)
		if err != nil {
			return fmt.Errorf("pull saved property: %w", err)
		}
		if res.MatchedCount == 0 {
			return s.missingUserOr(ctx, userID, ErrNotSaved)
		}

		if _, err := s.props.UpdateOne(ctx,
			bson.M{"_id": propertyID, "saves": bson.M{"$gt": 0}},
			bson.M{"$inc": bson.M{"saves": -1}},
		); err != nil {
			return fmt.Errorf("decrement saves: %w", err)
		}
		return nil
	})
}

func (s *Store) missingUserOr(ctx context.Context, userID primitive.ObjectID, otherwise error) error {
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return otherwise
}

// IsSaved reports whether the user has saved the property.
func (s *Store) IsSaved(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	n, err := s.users.CountDocuments(ctx,
		bson.M{"_id": userID, "saved_properties": propertyID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SavedIDs returns the user's saved list in save order.
func (s *Store) SavedIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	var u struct {
		Saved []primitive.ObjectID `bson:"saved_properties"`
	}
	opts := options.FindOne().SetProjection(bson.M{"saved_properties": 1})
	if err := s.users.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.Saved == nil {
		u.Saved = []primitive.ObjectID{}
	}
	return u.Saved, nil
}

// List returns the user's saved properties in save order. References to
// deleted properties are skipped and pulled from the user's list.
func (s *Store) List(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	ids, err := s.SavedIDs(ctx, userID)
	if err != nil || len(ids) == 0 {
		return []models.Property{}, err
	}

	cur, err := s.props.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[primitive.ObjectID]models.Property, len(ids))
	for cur.Next(ctx) {
		var p models.Property
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Property, 0, len(byID))
	var dangling []primitive.ObjectID
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		} else {
			dangling = append(dangling, id)
		}
	}

	if len(dangling) > 0 {
		if _, err := s.users.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$pull": bson.M{"saved_properties": bson.M{"$in": dangling}}},
		); err != nil {
			s.log.Warn("prune dangling saved properties", zap.String("user_id", userID.Hex()), zap.Error(err))
		}
	}
	return out, nil
}

// DistinctSavedIDs returns every property ID present in any saved list.
func (s *Store) DistinctSavedIDs(ctx context.Context) ([]primitive.ObjectID, error) {
	vals, err := s.users.Distinct(ctx, "saved_properties", bson.M{})
	if err != nil {
		return nil, err
	}
	out := make([]primitive.ObjectID, 0, len(vals))
	for _, v := range vals {
		if id, ok := v.(primitive.ObjectID); ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// PullSavedEverywhere removes ids from every user's saved list.
func (s *Store) PullSavedEverywhere(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.users.UpdateMany(ctx,
		bson.M{"saved_properties": bson.M{"$in": ids}},
		bson.M{"$pull": bson.M{"saved_properties": bson.M{"$in": ids}}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
