package router

import (
	"planwise-api/core/middleware"
	"planwise-api/modules/counter/controller"

	"github.com/labstack/echo/v4"
)

type CounterRouter struct {
	controller *controller.CounterController
}

func NewCounterRouter(controller *controller.CounterController) *CounterRouter {
	return &CounterRouter{controller: controller}
}

func (r *CounterRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	private := v1.Group("/private/counter", mw.AuthMiddleware())
	private.GET("", r.controller.Get)
	private.POST("/increment", r.controller.Increment)
}
