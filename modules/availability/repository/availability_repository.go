package repository

import (
	"context"
	"database/sql"
	"errors"

	"planwise-api/core/database"
	"planwise-api/core/logger"
	"planwise-api/core/timeslot"
	"planwise-api/modules/availability/entity"
	"planwise-api/modules/availability/mapper"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrUserMissing = errors.New("user does not exist")

type AvailabilityRepository struct {
	DB database.IDatabase
}

func NewAvailabilityRepository(db database.IDatabase) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

type AvailabilityRepositoryInterface interface {
	AppendSlots(ctx context.Context, userID uuid.UUID, incoming []timeslot.TimeSlot) ([]timeslot.TimeSlot, error)
	GetSlotsByUserID(ctx context.Context, userID uuid.UUID) ([]timeslot.TimeSlot, error)
	GetSlotsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, error)
}

// AppendSlots merges incoming into the user's stored slots and rewrites them
// in normalized form. The user row is locked for the duration so concurrent
// submissions for the same user serialize instead of dropping slots.
func (r *AvailabilityRepository) AppendSlots(ctx context.Context, userID uuid.UUID, incoming []timeslot.TimeSlot) ([]timeslot.TimeSlot, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:AppendSlots:BeginTx", err)
		return nil, err
	}
	defer tx.Rollback()

	var lockedID uuid.UUID
	err = tx.GetContext(ctx, &lockedID, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserMissing
		}
		logger.Error("AvailabilityRepository:AppendSlots:LockUser", err)
		return nil, err
	}

	var existing []entity.AvailabilitySlot
	err = tx.SelectContext(ctx, &existing, `
		SELECT user_id, start_time, end_time
		FROM availability_slots
		WHERE user_id = $1
		ORDER BY start_time
	`, userID)
	if err != nil {
		logger.Error("AvailabilityRepository:AppendSlots:SelectExisting", err)
		return nil, err
	}

	merged := timeslot.Normalize(append(mapper.ToTimeSlots(existing), incoming...))

	if _, err := tx.ExecContext(ctx, `DELETE FROM availability_slots WHERE user_id = $1`, userID); err != nil {
		logger.Error("AvailabilityRepository:AppendSlots:Delete", err)
		return nil, err
	}

	if len(merged) > 0 {
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO availability_slots (user_id, start_time, end_time)
			VALUES (:user_id, :start_time, :end_time)
		`, mapper.ToEntities(userID, merged))
		if err != nil {
			logger.Error("AvailabilityRepository:AppendSlots:Insert", err)
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:AppendSlots:Commit", err)
		return nil, err
	}

	return merged, nil
}

func (r *AvailabilityRepository) GetSlotsByUserID(ctx context.Context, userID uuid.UUID) ([]timeslot.TimeSlot, error) {
	var rows []entity.AvailabilitySlot
	query := `
		SELECT user_id, start_time, end_time
		FROM availability_slots
		WHERE user_id = $1
		ORDER BY start_time
	`
	if err := r.DB.SelectContext(ctx, &rows, query, userID); err != nil {
		logger.Error("AvailabilityRepository:GetSlotsByUserID", err)
		return nil, err
	}
	return timeslot.Normalize(mapper.ToTimeSlots(rows)), nil
}

// GetSlotsByUserIDs bulk-loads slots for every id. Each requested id is
// present in the result, with an empty list when it has no slots.
func (r *AvailabilityRepository) GetSlotsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, error) {
	result := make(map[uuid.UUID][]timeslot.TimeSlot, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT user_id, start_time, end_time
		FROM availability_slots
		WHERE user_id IN (?)
		ORDER BY user_id, start_time
	`, userIDs)
	if err != nil {
		return nil, err
	}

	var rows []entity.AvailabilitySlot
	if err := r.DB.SelectContext(ctx, &rows, r.DB.Rebind(query), args...); err != nil {
		logger.Error("AvailabilityRepository:GetSlotsByUserIDs", err)
		return nil, err
	}

	grouped := make(map[uuid.UUID][]entity.AvailabilitySlot, len(userIDs))
	for _, row := range rows {
		grouped[row.UserID] = append(grouped[row.UserID], row)
	}
	for _, id := range userIDs {
		result[id] = timeslot.Normalize(mapper.ToTimeSlots(grouped[id]))
	}

	return result, nil
}
