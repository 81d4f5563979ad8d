package controller

import (
	"planwise-api/core/controller"
	"planwise-api/core/errors"
	"planwise-api/core/middleware"
	"planwise-api/modules/group/dto"
	"planwise-api/modules/group/service"
	"planwise-api/modules/group/validator"

	"github.com/labstack/echo/v4"
)

type GroupController struct {
	controller.BaseController
	GroupService service.GroupServiceInterface
}

func NewGroupController(svc service.GroupServiceInterface) *GroupController {
	return &GroupController{
		BaseController: controller.NewBaseController(),
		GroupService:   svc,
	}
}

// CreateGroup handles POST /groups
func (c *GroupController) CreateGroup(ctx echo.Context) error {
	var req dto.CreateGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateCreateGroupRequest(&req); result.HasError() {
		return c.ValidationError(ctx, result)
	}

	resp, appErr := c.GroupService.CreateGroup(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, resp, "create group success")
}

// JoinGroup handles POST /groups/join
func (c *GroupController) JoinGroup(ctx echo.Context) error {
	var req dto.JoinGroupRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateJoinGroupRequest(&req); result.HasError() {
		return c.ValidationError(ctx, result)
	}

	resp, appErr := c.GroupService.JoinGroup(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, resp, "join group success")
}

// Login handles POST /groups/login
func (c *GroupController) Login(ctx echo.Context) error {
	var req dto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateLoginRequest(&req); result.HasError() {
		return c.ValidationError(ctx, result)
	}

	resp, appErr := c.GroupService.Login(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "login success")
}

// ListMembers handles GET /private/group/members
func (c *GroupController) ListMembers(ctx echo.Context) error {
	claims, ok := middleware.GroupClaims(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Group not authenticated")
	}

	members, appErr := c.GroupService.ListMembers(ctx.Request().Context(), claims.GroupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, members, "get members success")
}
