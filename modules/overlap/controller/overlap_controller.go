package controller

import (
	"planwise-api/core/controller"
	"planwise-api/core/errors"
	"planwise-api/core/middleware"
	"planwise-api/modules/overlap/service"

	"github.com/labstack/echo/v4"
)

type OverlapController struct {
	controller.BaseController
	OverlapService service.OverlapServiceInterface
}

func NewOverlapController(svc service.OverlapServiceInterface) *OverlapController {
	return &OverlapController{
		BaseController: controller.NewBaseController(),
		OverlapService: svc,
	}
}

// GetOverlap handles GET /private/overlap for the group in the token.
func (c *OverlapController) GetOverlap(ctx echo.Context) error {
	claims, ok := middleware.GroupClaims(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Group not authenticated")
	}

	resp, appErr := c.OverlapService.GroupOverlap(ctx.Request().Context(), claims.GroupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "get overlap success")
}
