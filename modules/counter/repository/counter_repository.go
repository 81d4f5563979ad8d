package repository

import (
	"context"
	"database/sql"
	"errors"

	"planwise-api/core/database"
	"planwise-api/core/logger"
	"planwise-api/modules/counter/entity"

	"github.com/google/uuid"
)

type CounterRepository struct {
	DB database.IDatabase
}

func NewCounterRepository(db database.IDatabase) *CounterRepository {
	return &CounterRepository{DB: db}
}

type CounterRepositoryInterface interface {
	Increment(ctx context.Context, groupID uuid.UUID) (*entity.Counter, error)
	GetByGroupID(ctx context.Context, groupID uuid.UUID) (*entity.Counter, error)
}

// Increment adds one in a single statement so concurrent callers never lose
// an update. Returns nil when the group has no counter.
func (r *CounterRepository) Increment(ctx context.Context, groupID uuid.UUID) (*entity.Counter, error) {
	var counter entity.Counter
	query := `
		UPDATE counters
		SET count = count + 1, updated_at = NOW()
		WHERE group_id = $1
		RETURNING group_id, count, updated_at
	`
	err := r.DB.GetContext(ctx, &counter, query, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CounterRepository:Increment", err)
		return nil, err
	}
	return &counter, nil
}

func (r *CounterRepository) GetByGroupID(ctx context.Context, groupID uuid.UUID) (*entity.Counter, error) {
	var counter entity.Counter
	query := `SELECT group_id, count, updated_at FROM counters WHERE group_id = $1`
	err := r.DB.GetContext(ctx, &counter, query, groupID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("CounterRepository:GetByGroupID", err)
		return nil, err
	}
	return &counter, nil
}
