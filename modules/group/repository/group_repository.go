package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"planwise-api/core/constants"
	"planwise-api/core/database"
	"planwise-api/core/logger"
	"planwise-api/modules/group/entity"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	constraintGroupName = "groups_name_key"
	constraintUserName  = "users_group_id_name_key"
)

var (
	ErrGroupNameTaken = errors.New("group name already exists")
	ErrUserNameTaken  = errors.New("user name already exists in group")
	ErrGroupMissing   = errors.New("group does not exist")
	// ErrInconsistent means a failed group+counter write could not be
	// confirmed as rolled back.
	ErrInconsistent = errors.New("group and counter may be out of sync")
)

type GroupRepository struct {
	DB database.IDatabase
}

func NewGroupRepository(db database.IDatabase) *GroupRepository {
	return &GroupRepository{DB: db}
}

type GroupRepositoryInterface interface {
	CreateGroupWithCounter(ctx context.Context, name string, passwordHash string) (*entity.Group, error)
	GetGroupByName(ctx context.Context, name string) (*entity.Group, error)
	GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)

	CreateUser(ctx context.Context, groupID uuid.UUID, name string) (*entity.User, error)
	GetUserByName(ctx context.Context, groupID uuid.UUID, name string) (*entity.User, error)
	GetUsersByGroupID(ctx context.Context, groupID uuid.UUID) ([]entity.User, error)
}

// CreateGroupWithCounter inserts the group and its zero counter in one
// transaction. A group row is never left behind without its counter.
func (r *GroupRepository) CreateGroupWithCounter(ctx context.Context, name string, passwordHash string) (*entity.Group, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("GroupRepository:CreateGroupWithCounter:BeginTx", err)
		return nil, err
	}

	var created entity.Group
	err = tx.GetContext(ctx, &created, `
		INSERT INTO groups (name, password_hash)
		VALUES ($1, $2)
		RETURNING id, name, password_hash, created_at
	`, name, passwordHash)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("GroupRepository:CreateGroupWithCounter:Rollback", rbErr)
		}
		if database.IsUniqueViolation(err, constraintGroupName) {
			return nil, ErrGroupNameTaken
		}
		logger.Error("GroupRepository:CreateGroupWithCounter:InsertGroup", err)
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO counters (group_id, count) VALUES ($1, 0)`, created.ID)
	if err != nil {
		logger.Error("GroupRepository:CreateGroupWithCounter:InsertCounter", err, "group_id", created.ID)
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("GroupRepository:CreateGroupWithCounter:Rollback", rbErr, "group_id", created.ID)
			return nil, fmt.Errorf("%w: counter insert: %v; rollback: %v", ErrInconsistent, err, rbErr)
		}
		return nil, fmt.Errorf("creating counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("GroupRepository:CreateGroupWithCounter:Commit", err, "group_id", created.ID)
		return nil, fmt.Errorf("%w: commit: %v", ErrInconsistent, err)
	}

	return &created, nil
}

func (r *GroupRepository) GetGroupByName(ctx context.Context, name string) (*entity.Group, error) {
	var group entity.Group
	query := `SELECT id, name, password_hash, created_at FROM groups WHERE name = $1`
	err := r.DB.GetContext(ctx, &group, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupByName", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	var group entity.Group
	query := `SELECT id, name, password_hash, created_at FROM groups WHERE id = $1`
	err := r.DB.GetContext(ctx, &group, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupByID", err)
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) CreateUser(ctx context.Context, groupID uuid.UUID, name string) (*entity.User, error) {
	var user entity.User
	query := `
		INSERT INTO users (name, group_id)
		VALUES ($1, $2)
		RETURNING id, name, group_id, created_at
	`
	err := r.DB.GetContext(ctx, &user, query, name, groupID)
	if err != nil {
		if database.IsUniqueViolation(err, constraintUserName) {
			return nil, ErrUserNameTaken
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constants.PgForeignKeyViolation {
			return nil, ErrGroupMissing
		}
		logger.Error("GroupRepository:CreateUser", err)
		return nil, err
	}
	return &user, nil
}

func (r *GroupRepository) GetUserByName(ctx context.Context, groupID uuid.UUID, name string) (*entity.User, error) {
	var user entity.User
	query := `SELECT id, name, group_id, created_at FROM users WHERE group_id = $1 AND name = $2`
	err := r.DB.GetContext(ctx, &user, query, groupID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("GroupRepository:GetUserByName", err)
		return nil, err
	}
	return &user, nil
}

func (r *GroupRepository) GetUsersByGroupID(ctx context.Context, groupID uuid.UUID) ([]entity.User, error) {
	users := []entity.User{}
	query := `
		SELECT id, name, group_id, created_at
		FROM users
		WHERE group_id = $1
		ORDER BY created_at, id
	`
	err := r.DB.SelectContext(ctx, &users, query, groupID)
	if err != nil {
		logger.Error("GroupRepository:GetUsersByGroupID", err)
		return nil, err
	}
	return users, nil
}
