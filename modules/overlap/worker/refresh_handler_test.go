package worker

import (
	"context"
	"errors"
	"testing"

	"planwise-api/core/constants"
	apperrors "planwise-api/core/errors"
	"planwise-api/modules/overlap/dto"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type stubOverlap struct {
	refreshed []uuid.UUID
	err       *apperrors.AppError
}

func (s *stubOverlap) GroupOverlap(context.Context, uuid.UUID) (*dto.OverlapResponse, *apperrors.AppError) {
	return nil, nil
}

func (s *stubOverlap) Refresh(_ context.Context, groupID uuid.UUID) *apperrors.AppError {
	s.refreshed = append(s.refreshed, groupID)
	return s.err
}

func TestRefreshHandler(t *testing.T) {
	svc := &stubOverlap{}
	handler := NewRefreshHandler(svc)
	groupID := uuid.New()

	task := asynq.NewTask(constants.TaskOverlapRefresh, []byte(`{"group_id":"`+groupID.String()+`"}`))
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.refreshed) != 1 || svc.refreshed[0] != groupID {
		t.Fatalf("expected refresh of %s, got %v", groupID, svc.refreshed)
	}
}

func TestRefreshHandler_BadPayloadSkipsRetry(t *testing.T) {
	svc := &stubOverlap{}
	handler := NewRefreshHandler(svc)

	err := handler(context.Background(), asynq.NewTask(constants.TaskOverlapRefresh, []byte("not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(svc.refreshed) != 0 {
		t.Fatal("refresh must not run for a bad payload")
	}
}

func TestRefreshHandler_StoreFailureIsRetried(t *testing.T) {
	svc := &stubOverlap{err: apperrors.NewAppError(apperrors.ErrUnavailable, "get availability failed", nil)}
	handler := NewRefreshHandler(svc)

	task := asynq.NewTask(constants.TaskOverlapRefresh, []byte(`{"group_id":"`+uuid.NewString()+`"}`))
	err := handler(context.Background(), task)
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable error, got %v", err)
	}
}

func TestRefreshHandler_OtherErrorsSkipRetry(t *testing.T) {
	svc := &stubOverlap{err: apperrors.NewAppError(apperrors.ErrNotFound, "group not found", nil)}
	handler := NewRefreshHandler(svc)

	task := asynq.NewTask(constants.TaskOverlapRefresh, []byte(`{"group_id":"`+uuid.NewString()+`"}`))
	if err := handler(context.Background(), task); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}
