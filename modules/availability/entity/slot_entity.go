package entity

import (
	"time"

	"github.com/google/uuid"
)

type AvailabilitySlot struct {
	UserID    uuid.UUID `db:"user_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}
