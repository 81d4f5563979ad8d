package controller

import (
	"planwise-api/core/controller"
	"planwise-api/core/errors"
	"planwise-api/core/middleware"
	"planwise-api/modules/availability/dto"
	"planwise-api/modules/availability/service"
	"planwise-api/modules/availability/validator"

	"github.com/labstack/echo/v4"
)

type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

// Submit handles POST /availability
func (c *AvailabilityController) Submit(ctx echo.Context) error {
	var req dto.SubmitAvailabilityRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(ctx, errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateSubmitRequest(&req); result.HasError() {
		return c.ValidationError(ctx, result)
	}

	resp, appErr := c.AvailabilityService.Submit(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "save availability success")
}

// GetForUser handles GET /private/availability/:user_name
func (c *AvailabilityController) GetForUser(ctx echo.Context) error {
	claims, ok := middleware.GroupClaims(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Group not authenticated")
	}

	resp, appErr := c.AvailabilityService.ListForUser(ctx.Request().Context(), claims.GroupID, ctx.Param("user_name"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "get availability success")
}
