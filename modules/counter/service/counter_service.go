package service

import (
	"context"
	"time"

	"planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/modules/counter/dto"
	"planwise-api/modules/counter/entity"
	"planwise-api/modules/counter/repository"

	"github.com/google/uuid"
)

type CounterServiceInterface interface {
	Increment(ctx context.Context, groupID uuid.UUID) (*dto.CounterResponse, *errors.AppError)
	Get(ctx context.Context, groupID uuid.UUID) (*dto.CounterResponse, *errors.AppError)
}

type CounterService struct {
	repo    repository.CounterRepositoryInterface
	timeout time.Duration
}

func NewCounterService(repo repository.CounterRepositoryInterface, timeout time.Duration) *CounterService {
	return &CounterService{repo: repo, timeout: timeout}
}

func (s *CounterService) Increment(ctx context.Context, groupID uuid.UUID) (*dto.CounterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	counter, err := s.repo.Increment(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "increment counter failed", err)
	}
	if counter == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "counter not found", nil)
	}

	logger.Debug("CounterService:Increment", "group_id", groupID, "count", counter.Count)
	return toResponse(counter), nil
}

func (s *CounterService) Get(ctx context.Context, groupID uuid.UUID) (*dto.CounterResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	counter, err := s.repo.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get counter failed", err)
	}
	if counter == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "counter not found", nil)
	}
	return toResponse(counter), nil
}

func toResponse(c *entity.Counter) *dto.CounterResponse {
	return &dto.CounterResponse{
		GroupID:   c.GroupID,
		Count:     c.Count,
		UpdatedAt: c.UpdatedAt,
	}
}
