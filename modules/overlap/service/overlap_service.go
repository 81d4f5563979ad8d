package service

import (
	"context"
	"iter"
	"time"

	"planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/core/timeslot"
	groupentity "planwise-api/modules/group/entity"
	"planwise-api/modules/overlap/dto"
	"planwise-api/modules/overlap/repository"

	"github.com/google/uuid"
)

type MemberSource interface {
	ListUsers(ctx context.Context, groupID uuid.UUID) ([]groupentity.User, *errors.AppError)
}

type SlotSource interface {
	SlotsForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, *errors.AppError)
}

type OverlapServiceInterface interface {
	GroupOverlap(ctx context.Context, groupID uuid.UUID) (*dto.OverlapResponse, *errors.AppError)
	Refresh(ctx context.Context, groupID uuid.UUID) *errors.AppError
}

type OverlapService struct {
	members MemberSource
	slots   SlotSource
	cache   repository.OverlapCacheInterface
	timeout time.Duration
}

// NewOverlapService accepts a nil cache, in which case every call computes.
func NewOverlapService(members MemberSource, slots SlotSource, cache repository.OverlapCacheInterface, timeout time.Duration) *OverlapService {
	return &OverlapService{
		members: members,
		slots:   slots,
		cache:   cache,
		timeout: timeout,
	}
}

// GroupOverlap returns the windows every member of the group is available.
// A member with no slots makes the overlap empty, as does an empty group.
func (s *OverlapService) GroupOverlap(ctx context.Context, groupID uuid.UUID) (*dto.OverlapResponse, *errors.AppError) {
	gen, cached := s.lookup(ctx, groupID)
	if cached != nil {
		return cached, nil
	}

	overlap, appErr := s.compute(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}

	s.store(ctx, groupID, gen, overlap)
	return overlap, nil
}

// Refresh warms the cache for the current generation.
func (s *OverlapService) Refresh(ctx context.Context, groupID uuid.UUID) *errors.AppError {
	_, appErr := s.GroupOverlap(ctx, groupID)
	return appErr
}

func (s *OverlapService) lookup(ctx context.Context, groupID uuid.UUID) (int64, *dto.OverlapResponse) {
	if s.cache == nil {
		return 0, nil
	}

	gen, err := s.cache.Generation(ctx, groupID)
	if err != nil {
		logger.Warn("OverlapService:lookup:Generation", "group_id", groupID, "error", err)
		return 0, nil
	}

	cached, err := s.cache.Load(ctx, groupID, gen)
	if err != nil {
		logger.Warn("OverlapService:lookup:Load", "group_id", groupID, "error", err)
		return gen, nil
	}
	return gen, cached
}

// store writes under the generation read before computing; if the group
// changed meanwhile the entry lands on a retired key.
func (s *OverlapService) store(ctx context.Context, groupID uuid.UUID, gen int64, overlap *dto.OverlapResponse) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Store(ctx, groupID, gen, overlap); err != nil {
		logger.Warn("OverlapService:store", "group_id", groupID, "error", err)
	}
}

func (s *OverlapService) compute(ctx context.Context, groupID uuid.UUID) (*dto.OverlapResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, appErr := s.members.ListUsers(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	slotsByUser, appErr := s.slots.SlotsForUsers(ctx, ids)
	if appErr != nil {
		return nil, appErr
	}

	common := IntersectSeq(participants(ids, slotsByUser))

	logger.Info("OverlapService:compute",
		"group_id", groupID,
		"participants", len(ids),
		"windows", len(common),
	)
	return &dto.OverlapResponse{
		GroupID:      groupID,
		Participants: len(ids),
		Slots:        common,
	}, nil
}

func participants(ids []uuid.UUID, slotsByUser map[uuid.UUID][]timeslot.TimeSlot) iter.Seq[[]timeslot.TimeSlot] {
	return func(yield func([]timeslot.TimeSlot) bool) {
		for _, id := range ids {
			if !yield(slotsByUser[id]) {
				return
			}
		}
	}
}
