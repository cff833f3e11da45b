package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeSaved struct {
	ids    []primitive.ObjectID
	pulled []primitive.ObjectID
}

func (f *fakeSaved) DistinctSavedIDs(context.Context) ([]primitive.ObjectID, error) {
	return f.ids, nil
}

func (f *fakeSaved) PullSavedEverywhere(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	f.pulled = ids
	return int64(len(ids)), nil
}

type fakeLookup struct {
	existing map[primitive.ObjectID]struct{}
	err      error
}

func (f fakeLookup) ExistingIDs(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]struct{}, error) {
	return f.existing, f.err
}

func TestPruneSavedProperties_PullsOnlyMissing(t *testing.T) {
	live, gone := primitive.NewObjectID(), primitive.NewObjectID()
	users := &fakeSaved{ids: []primitive.ObjectID{live, gone}}
	props := fakeLookup{existing: map[primitive.ObjectID]struct{}{live: {}}}

	n, err := PruneSavedProperties(context.Background(), users, props)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || len(users.pulled) != 1 || users.pulled[0] != gone {
		t.Errorf("pulled = %v (n=%d), want only %v", users.pulled, n, gone)
	}
}

func TestPruneSavedProperties_NothingMissing(t *testing.T) {
	id := primitive.NewObjectID()
	users := &fakeSaved{ids: []primitive.ObjectID{id}}
	props := fakeLookup{existing: map[primitive.ObjectID]struct{}{id: {}}}

	n, err := PruneSavedProperties(context.Background(), users, props)
	if err != nil || n != 0 || users.pulled != nil {
		t.Errorf("n=%d err=%v pulled=%v", n, err, users.pulled)
	}
}

func TestPruneSavedPropertiesJob_PropagatesError(t *testing.T) {
	users := &fakeSaved{ids: []primitive.ObjectID{primitive.NewObjectID()}}
	props := fakeLookup{err: errors.New("boom")}

	job := PruneSavedPropertiesJob(users, props, zap.NewNop(), "")
	if job.Schedule != DefaultPruneSchedule {
		t.Errorf("default schedule = %q", job.Schedule)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestJob_RunTimeout(t *testing.T) {
	if (Job{}).RunTimeout() != time.Minute {
		t.Error("zero timeout should default to one minute")
	}
	if (Job{Timeout: time.Second}).RunTimeout() != time.Second {
		t.Error("explicit timeout ignored")
	}
}
