package dto

import (
	"planwise-api/core/timeslot"

	"github.com/google/uuid"
)

// OverlapResponse is also the cached form of a group's overlap.
type OverlapResponse struct {
	GroupID      uuid.UUID           `json:"group_id"`
	Participants int                 `json:"participants"`
	Slots        []timeslot.TimeSlot `json:"slots"`
}

// RefreshPayload is the body of the overlap refresh task.
type RefreshPayload struct {
	GroupID uuid.UUID `json:"group_id"`
}
