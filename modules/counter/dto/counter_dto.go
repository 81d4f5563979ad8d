package dto

import (
	"time"

	"github.com/google/uuid"
)

type CounterResponse struct {
	GroupID   uuid.UUID `json:"group_id"`
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}
