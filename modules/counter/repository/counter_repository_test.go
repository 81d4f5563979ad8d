package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"planwise-api/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func setupMockRepo(t *testing.T) (*CounterRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewCounterRepository(database.NewFromSQLx(sqlx.NewDb(db, "postgres"))), mock
}

func TestIncrement_SingleAtomicStatement(t *testing.T) {
	repo, mock := setupMockRepo(t)
	groupID := uuid.New()

	// One UPDATE ... RETURNING and nothing else: no read-modify-write.
	mock.ExpectQuery(regexp.QuoteMeta("SET count = count + 1")).
		WithArgs(groupID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "count", "updated_at"}).
			AddRow(groupID.String(), int64(8), time.Now()))

	counter, err := repo.Increment(context.Background(), groupID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter.Count != 8 || counter.GroupID != groupID {
		t.Fatalf("unexpected counter: %+v", counter)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestIncrement_MissingRow(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("UPDATE counters").WillReturnError(sql.ErrNoRows)

	counter, err := repo.Increment(context.Background(), uuid.New())
	if err != nil || counter != nil {
		t.Fatalf("expected nil, nil for missing counter, got %v, %v", counter, err)
	}
}

func TestIncrement_StoreError(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("UPDATE counters").WillReturnError(errors.New("connection reset"))

	if _, err := repo.Increment(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetByGroupID(t *testing.T) {
	repo, mock := setupMockRepo(t)
	groupID := uuid.New()

	mock.ExpectQuery("SELECT group_id, count, updated_at FROM counters").
		WithArgs(groupID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "count", "updated_at"}).
			AddRow(groupID.String(), int64(0), time.Now()))

	counter, err := repo.GetByGroupID(context.Background(), groupID)
	if err != nil || counter == nil || counter.Count != 0 {
		t.Fatalf("unexpected result: %+v, %v", counter, err)
	}
}
