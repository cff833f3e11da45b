// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SavedRefs is the user-side half of saved-property cleanup.
type SavedRefs interface {
	DistinctSavedIDs(ctx context.Context) ([]primitive.ObjectID, error)
	PullSavedEverywhere(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// PropertyLookup reports which of the given property IDs still exist.
type PropertyLookup interface {
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error)
}

// DefaultPruneSchedule runs the saved-list sweep once a night.
const DefaultPruneSchedule = "17 3 * * *"

// PruneSavedPropertiesJob removes saved-list references to properties that
// were deleted. Reads already skip dangling references; this keeps the
// stored lists from accumulating them.
func PruneSavedPropertiesJob(users SavedRefs, props PropertyLookup, logger *zap.Logger, schedule string) Job {
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}
	return Job{
		Name:     "prune-saved-properties",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			n, err := PruneSavedProperties(ctx, users, props)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("pruned dangling saved properties", zap.Int64("users_modified", n))
			}
			return nil
		},
	}
}

// PruneSavedProperties performs one cleanup pass and returns the number of
// user documents modified.
func PruneSavedProperties(ctx context.Context, users SavedRefs, props PropertyLookup) (int64, error) {
	saved, err := users.DistinctSavedIDs(ctx)
	if err != nil || len(saved) == 0 {
		return 0, err
	}
	existing, err := props.ExistingIDs(ctx, saved)
	if err != nil {
		return 0, err
	}

	var missing []primitive.ObjectID
	for _, id := range saved {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}
	return users.PullSavedEverywhere(ctx, missing)
}
