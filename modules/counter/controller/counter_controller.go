package controller

import (
	"planwise-api/core/controller"
	"planwise-api/core/errors"
	"planwise-api/core/middleware"
	"planwise-api/modules/counter/service"

	"github.com/labstack/echo/v4"
)

type CounterController struct {
	controller.BaseController
	CounterService service.CounterServiceInterface
}

func NewCounterController(svc service.CounterServiceInterface) *CounterController {
	return &CounterController{
		BaseController: controller.NewBaseController(),
		CounterService: svc,
	}
}

func (c *CounterController) Increment(ctx echo.Context) error {
	claims, ok := middleware.GroupClaims(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Group not authenticated")
	}

	resp, appErr := c.CounterService.Increment(ctx.Request().Context(), claims.GroupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "increment counter success")
}

func (c *CounterController) Get(ctx echo.Context) error {
	claims, ok := middleware.GroupClaims(ctx)
	if !ok {
		return c.Unauthorized(ctx, errors.ErrUnauthorized, "Group not authenticated")
	}

	resp, appErr := c.CounterService.Get(ctx.Request().Context(), claims.GroupID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "get counter success")
}
