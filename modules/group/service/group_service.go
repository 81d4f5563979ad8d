package service

import (
	"context"
	stderrors "errors"
	"time"

	"planwise-api/core/credential"
	"planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/core/utils"
	"planwise-api/modules/group/dto"
	"planwise-api/modules/group/entity"
	"planwise-api/modules/group/mapper"
	"planwise-api/modules/group/repository"

	"github.com/google/uuid"
)

// ChangeNotifier is told whenever a group's membership or availability
// changes, so derived data such as the cached overlap can be refreshed.
type ChangeNotifier interface {
	NotifyGroupChanged(ctx context.Context, groupID uuid.UUID)
}

type noopNotifier struct{}

func (noopNotifier) NotifyGroupChanged(context.Context, uuid.UUID) {}

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.CreateGroupResponse, *errors.AppError)
	Authenticate(ctx context.Context, name string, password string) (uuid.UUID, *errors.AppError)
	AddUser(ctx context.Context, groupID uuid.UUID, username string) (*entity.User, *errors.AppError)
	JoinGroup(ctx context.Context, req *dto.JoinGroupRequest) (*dto.JoinGroupResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError)
	FindUser(ctx context.Context, groupID uuid.UUID, username string) (*entity.User, *errors.AppError)
	ListUsers(ctx context.Context, groupID uuid.UUID) ([]entity.User, *errors.AppError)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError)
}

type GroupService struct {
	repo     repository.GroupRepositoryInterface
	hasher   credential.Hasher
	tokens   *utils.TokenManager
	notifier ChangeNotifier
	timeout  time.Duration
}

func NewGroupService(
	repo repository.GroupRepositoryInterface,
	hasher credential.Hasher,
	tokens *utils.TokenManager,
	notifier ChangeNotifier,
	timeout time.Duration,
) *GroupService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &GroupService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		timeout:  timeout,
	}
}

// CreateGroup persists the group and its counter together.
func (s *GroupService) CreateGroup(ctx context.Context, req *dto.CreateGroupRequest) (*dto.CreateGroupResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		logger.Error("GroupService:CreateGroup:Hash", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "hash password failed", err)
	}

	group, err := s.repo.CreateGroupWithCounter(ctx, req.GroupName, hash)
	switch {
	case stderrors.Is(err, repository.ErrGroupNameTaken):
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "group name already exists", err)
	case stderrors.Is(err, repository.ErrInconsistent):
		return nil, errors.NewAppError(errors.ErrInconsistent, "group creation left an inconsistent state", err)
	case err != nil:
		return nil, errors.NewAppError(errors.ErrUnavailable, "create group failed", err)
	}

	logger.Info("GroupService:CreateGroup:Created", "group_id", group.ID)
	return &dto.CreateGroupResponse{GroupID: group.ID}, nil
}

// Authenticate resolves a group name and checks its password.
func (s *GroupService) Authenticate(ctx context.Context, name string, password string) (uuid.UUID, *errors.AppError) {
	group, appErr := s.authenticate(ctx, name, password)
	if appErr != nil {
		return uuid.Nil, appErr
	}
	return group.ID, nil
}

func (s *GroupService) authenticate(ctx context.Context, name string, password string) (*entity.Group, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	group, err := s.repo.GetGroupByName(ctx, name)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	if !s.hasher.Verify(password, group.PasswordHash) {
		logger.Warn("GroupService:Authenticate:WrongPassword", "group_id", group.ID)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid group password", nil)
	}
	return group, nil
}

func (s *GroupService) AddUser(ctx context.Context, groupID uuid.UUID, username string) (*entity.User, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get group failed", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}

	user, err := s.repo.CreateUser(ctx, groupID, username)
	switch {
	case stderrors.Is(err, repository.ErrUserNameTaken):
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "username already taken in this group", err)
	case stderrors.Is(err, repository.ErrGroupMissing):
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", err)
	case err != nil:
		return nil, errors.NewAppError(errors.ErrUnavailable, "add user failed", err)
	}

	// A member without slots changes the group overlap.
	s.notifier.NotifyGroupChanged(ctx, groupID)

	logger.Info("GroupService:AddUser:Joined", "group_id", groupID, "user_id", user.ID)
	return user, nil
}

func (s *GroupService) JoinGroup(ctx context.Context, req *dto.JoinGroupRequest) (*dto.JoinGroupResponse, *errors.AppError) {
	groupID, appErr := s.Authenticate(ctx, req.GroupName, req.Password)
	if appErr != nil {
		return nil, appErr
	}

	user, appErr := s.AddUser(ctx, groupID, req.Username)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToJoinGroupResponse(user), nil
}

func (s *GroupService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	group, appErr := s.authenticate(ctx, req.GroupName, req.Password)
	if appErr != nil {
		return nil, appErr
	}

	token, expiresAt, err := s.tokens.GenerateGroupToken(group.ID, group.Name)
	if err != nil {
		logger.Error("GroupService:Login:GenerateToken", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "generate token failed", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		GroupID:   group.ID,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *GroupService) FindUser(ctx context.Context, groupID uuid.UUID, username string) (*entity.User, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.repo.GetUserByName(ctx, groupID, username)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get user failed", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "user not found in group", nil)
	}
	return user, nil
}

func (s *GroupService) ListUsers(ctx context.Context, groupID uuid.UUID) ([]entity.User, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	users, err := s.repo.GetUsersByGroupID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUnavailable, "get group members failed", err)
	}
	return users, nil
}

func (s *GroupService) ListMembers(ctx context.Context, groupID uuid.UUID) ([]dto.MemberResponse, *errors.AppError) {
	users, appErr := s.ListUsers(ctx, groupID)
	if appErr != nil {
		return nil, appErr
	}
	return mapper.ToMemberResponses(users), nil
}
