package entity

import (
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// User is a member of exactly one group.
type User struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	GroupID   uuid.UUID `db:"group_id"`
	CreatedAt time.Time `db:"created_at"`
}
