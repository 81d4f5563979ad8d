package router

import (
	"planwise-api/core/middleware"
	"planwise-api/modules/group/controller"

	"github.com/labstack/echo/v4"
)

type GroupRouter struct {
	controller *controller.GroupController
}

func NewGroupRouter(controller *controller.GroupController) *GroupRouter {
	return &GroupRouter{controller: controller}
}

// Register mounts the public credential routes (rate limited) and the
// token-protected member listing.
func (r *GroupRouter) Register(v1 *echo.Group, mw *middleware.Middleware, limiter echo.MiddlewareFunc) {
	groups := v1.Group("/groups", limiter)
	groups.POST("", r.controller.CreateGroup)
	groups.POST("/join", r.controller.JoinGroup)
	groups.POST("/login", r.controller.Login)

	private := v1.Group("/private/group", mw.AuthMiddleware())
	private.GET("/members", r.controller.ListMembers)
}
