package service

import (
	"context"
	stderrors "errors"
	"time"

	"planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/core/timeslot"
	"planwise-api/modules/availability/dto"
	"planwise-api/modules/availability/mapper"
	"planwise-api/modules/availability/repository"
	"planwise-api/modules/availability/validator"
	groupentity "planwise-api/modules/group/entity"
	groupservice "planwise-api/modules/group/service"

	"github.com/google/uuid"
)

// GroupDirectory is the part of the group registry availability needs.
type GroupDirectory interface {
	Authenticate(ctx context.Context, name string, password string) (uuid.UUID, *errors.AppError)
	FindUser(ctx context.Context, groupID uuid.UUID, username string) (*groupentity.User, *errors.AppError)
}

type AvailabilityServiceInterface interface {
	Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError)
	Append(ctx context.Context, userID uuid.UUID, slots []timeslot.TimeSlot) ([]timeslot.TimeSlot, *errors.AppError)
	SlotsForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, *errors.AppError)
	ListForUser(ctx context.Context, groupID uuid.UUID, username string) (*dto.AvailabilityResponse, *errors.AppError)
}

type AvailabilityService struct {
	repo     repository.AvailabilityRepositoryInterface
	groups   GroupDirectory
	notifier groupservice.ChangeNotifier
	location *time.Location
	timeout  time.Duration
}

func NewAvailabilityService(
	repo repository.AvailabilityRepositoryInterface,
	groups GroupDirectory,
	notifier groupservice.ChangeNotifier,
	location *time.Location,
	timeout time.Duration,
) *AvailabilityService {
	if location == nil {
		location = time.UTC
	}
	return &AvailabilityService{
		repo:     repo,
		groups:   groups,
		notifier: notifier,
		location: location,
		timeout:  timeout,
	}
}

// Submit authenticates against the group, resolves the member by name and
// appends the parsed slots to what the member already has.
func (s *AvailabilityService) Submit(ctx context.Context, req *dto.SubmitAvailabilityRequest) (*dto.AvailabilityResponse, *errors.AppError) {
	slots, result := validator.ParseSlots(req.Slots, s.location)
	if result.HasError() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, result.Error(), nil)
	}

	groupID, appErr := s.groups.Authenticate(ctx, req.GroupName, req.Password)
	if appErr != nil {
		return nil, appErr
	}

	user, appErr := s.groups.FindUser(ctx, groupID, req.UserName)
	if appErr != nil {
		return nil, appErr
	}

	merged, appErr := s.Append(ctx, user.ID, slots)
	if appErr != nil {
		return nil, appErr
	}

	s.notifier.NotifyGroupChanged(ctx, groupID)

	logger.Info("AvailabilityService:Submit",
		"group_id", groupID,
		"user_id", user.ID,
		"submitted", len(slots),
		"stored", len(merged),
	)
	return mapper.ToAvailabilityResponse(user.ID, merged), nil
}

func (s *AvailabilityService) Append(ctx context.Context, userID uuid.UUID, slots []timeslot.TimeSlot) ([]timeslot.TimeSlot, *errors.AppError) {
	if err := timeslot.Validate(slots); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	merged, err := s.repo.AppendSlots(ctx, userID, slots)
	if stderrors.Is(err, repository.ErrUserMissing) {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found", err)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "save availability failed", err)
	}
	return merged, nil
}

func (s *AvailabilityService) SlotsForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]timeslot.TimeSlot, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slots, err := s.repo.GetSlotsByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get availability failed", err)
	}
	return slots, nil
}

func (s *AvailabilityService) ListForUser(ctx context.Context, groupID uuid.UUID, username string) (*dto.AvailabilityResponse, *errors.AppError) {
	user, appErr := s.groups.FindUser(ctx, groupID, username)
	if appErr != nil {
		return nil, appErr
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slots, err := s.repo.GetSlotsByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get availability failed", err)
	}
	return mapper.ToAvailabilityResponse(user.ID, slots), nil
}
