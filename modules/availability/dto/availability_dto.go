package dto

import (
	"time"

	"github.com/google/uuid"
)

type SlotRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SubmitAvailabilityRequest is the body the PlanWise frontend posts.
type SubmitAvailabilityRequest struct {
	UserName  string        `json:"user_name"`
	GroupName string        `json:"group_name"`
	Password  string        `json:"password"`
	Slots     []SlotRequest `json:"slots"`
}

type SlotResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AvailabilityResponse struct {
	UserID uuid.UUID      `json:"user_id"`
	Slots  []SlotResponse `json:"slots"`
}
