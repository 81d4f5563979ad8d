package mapper

import (
	"planwise-api/modules/group/dto"
	"planwise-api/modules/group/entity"
)

func ToJoinGroupResponse(user *entity.User) *dto.JoinGroupResponse {
	return &dto.JoinGroupResponse{
		UserID:  user.ID,
		GroupID: user.GroupID,
	}
}

func ToMemberResponses(users []entity.User) []dto.MemberResponse {
	members := make([]dto.MemberResponse, len(users))
	for i, u := range users {
		members[i] = dto.MemberResponse{
			ID:       u.ID,
			Name:     u.Name,
			JoinedAt: u.CreatedAt,
		}
	}
	return members
}
