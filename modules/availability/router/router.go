package router

import (
	"planwise-api/core/middleware"
	"planwise-api/modules/availability/controller"

	"github.com/labstack/echo/v4"
)

type AvailabilityRouter struct {
	controller *controller.AvailabilityController
}

func NewAvailabilityRouter(controller *controller.AvailabilityController) *AvailabilityRouter {
	return &AvailabilityRouter{controller: controller}
}

func (r *AvailabilityRouter) Register(v1 *echo.Group, mw *middleware.Middleware, limiter echo.MiddlewareFunc) {
	v1.POST("/availability", r.controller.Submit, limiter)

	private := v1.Group("/private/availability", mw.AuthMiddleware())
	private.GET("/:user_name", r.controller.GetForUser)
}
