package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateGroupRequest struct {
	GroupName string `json:"group_name"`
	Password  string `json:"password"`
}

type CreateGroupResponse struct {
	GroupID uuid.UUID `json:"group_id"`
}

type JoinGroupRequest struct {
	GroupName string `json:"group_name"`
	Password  string `json:"password"`
	Username  string `json:"username"`
}

type JoinGroupResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	GroupID uuid.UUID `json:"group_id"`
}

type LoginRequest struct {
	GroupName string `json:"group_name"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	GroupID   uuid.UUID `json:"group_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MemberResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}
