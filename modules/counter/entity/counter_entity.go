package entity

import (
	"time"

	"github.com/google/uuid"
)

// Counter is the per-group usage count created alongside its group.
type Counter struct {
	GroupID   uuid.UUID `db:"group_id"`
	Count     int64     `db:"count"`
	UpdatedAt time.Time `db:"updated_at"`
}
