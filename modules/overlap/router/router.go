package router

import (
	"planwise-api/core/middleware"
	"planwise-api/modules/overlap/controller"

	"github.com/labstack/echo/v4"
)

type OverlapRouter struct {
	controller *controller.OverlapController
}

func NewOverlapRouter(controller *controller.OverlapController) *OverlapRouter {
	return &OverlapRouter{controller: controller}
}

func (r *OverlapRouter) Register(v1 *echo.Group, mw *middleware.Middleware) {
	private := v1.Group("/private", mw.AuthMiddleware())
	private.GET("/overlap", r.controller.GetOverlap)
}
