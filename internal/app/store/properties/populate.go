package propertystore

import (
	"context"
	"fmt"

	"github.com/dalemusser/estatehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AgentFields selects how much of the agent profile Populate loads.
type AgentFields int

const (
	// AgentCard is contact details only.
	AgentCard AgentFields = iota
	// AgentListing adds the agent's rating.
	AgentListing
	// AgentFull is the complete public profile.
	AgentFull
)

func (f AgentFields) projection() bson.M {
	base := bson.M{"name": 1, "email": 1, "phone": 1, "avatar": 1}
	switch f {
	case AgentListing:
		base["agent_details.rating"] = 1
	case AgentFull:
		base["bio"] = 1
		base["agent_details"] = 1
	}
	return base
}

// Populate attaches each listing's agent using one $in query. Agents that
// no longer exist leave only their ID in the view.
func (s *Store) Populate(ctx context.Context, props []models.Property, fields AgentFields) ([]models.PropertyView, error) {
	out := make([]models.PropertyView, 0, len(props))
	if len(props) == 0 {
		return out, nil
	}

	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, len(props))
	for _, p := range props {
		if _, ok := seen[p.AgentID]; !ok {
			seen[p.AgentID] = struct{}{}
			ids = append(ids, p.AgentID)
		}
	}

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(fields.projection()))
	if err != nil {
		return nil, fmt.Errorf("load agents: %w", err)
	}
	defer cur.Close(ctx)

	agents := make(map[primitive.ObjectID]*models.AgentSummary, len(ids))
	for cur.Next(ctx) {
		var a models.AgentSummary
		if err := cur.Decode(&a); err != nil {
			return nil, fmt.Errorf("decode agent: %w", err)
		}
		agents[a.ID] = &a
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	now := s.now()
	for _, p := range props {
		out = append(out, models.NewPropertyView(p, agents[p.AgentID], now))
	}
	return out, nil
}
