package service

import (
	"context"
	"errors"
	"testing"

	"planwise-api/modules/overlap/dto"

	"github.com/google/uuid"
)

// flakyCache fails Bump and records what else the invalidator tries.
type flakyCache struct {
	bumpErr error
	dropped []uuid.UUID
}

func (f *flakyCache) Generation(context.Context, uuid.UUID) (int64, error) { return 0, nil }

func (f *flakyCache) Bump(context.Context, uuid.UUID) (int64, error) {
	if f.bumpErr != nil {
		return 0, f.bumpErr
	}
	return 1, nil
}

func (f *flakyCache) Load(context.Context, uuid.UUID, int64) (*dto.OverlapResponse, error) {
	return nil, nil
}

func (f *flakyCache) Store(context.Context, uuid.UUID, int64, *dto.OverlapResponse) error {
	return nil
}

func (f *flakyCache) Drop(_ context.Context, groupID uuid.UUID) error {
	f.dropped = append(f.dropped, groupID)
	return nil
}

func TestInvalidator_BumpFailureDropsCurrentEntry(t *testing.T) {
	c := &flakyCache{bumpErr: errors.New("i/o timeout")}
	enqueuer := &recordingEnqueuer{}
	groupID := uuid.New()

	NewInvalidator(c, enqueuer).NotifyGroupChanged(context.Background(), groupID)

	if len(c.dropped) != 1 || c.dropped[0] != groupID {
		t.Fatalf("expected current entry dropped for %s, got %v", groupID, c.dropped)
	}
	if len(enqueuer.tasks) != 0 {
		t.Fatalf("no refresh expected when the bump failed, got %v", enqueuer.tasks)
	}
}

func TestInvalidator_BumpSuccessKeepsEntryAndEnqueues(t *testing.T) {
	c := &flakyCache{}
	enqueuer := &recordingEnqueuer{}

	NewInvalidator(c, enqueuer).NotifyGroupChanged(context.Background(), uuid.New())

	if len(c.dropped) != 0 {
		t.Fatalf("no drop expected after a successful bump, got %v", c.dropped)
	}
	if len(enqueuer.tasks) != 1 {
		t.Fatalf("expected one refresh task, got %v", enqueuer.tasks)
	}
}
