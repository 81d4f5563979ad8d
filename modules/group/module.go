package group

import (
	"time"

	"planwise-api/core/credential"
	"planwise-api/core/database"
	"planwise-api/core/middleware"
	"planwise-api/core/utils"
	"planwise-api/modules/group/controller"
	"planwise-api/modules/group/repository"
	"planwise-api/modules/group/router"
	"planwise-api/modules/group/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	DB       database.IDatabase
	Hasher   credential.Hasher
	Tokens   *utils.TokenManager
	Notifier service.ChangeNotifier
	Timeout  time.Duration
}

// Init wires the group registry and registers its routes. The service is
// returned for the modules that authenticate through it.
func Init(v1 *echo.Group, deps Deps, mw *middleware.Middleware, limiter echo.MiddlewareFunc) *service.GroupService {
	repo := repository.NewGroupRepository(deps.DB)
	svc := service.NewGroupService(repo, deps.Hasher, deps.Tokens, deps.Notifier, deps.Timeout)
	ctrl := controller.NewGroupController(svc)

	router.NewGroupRouter(ctrl).Register(v1, mw, limiter)

	return svc
}
