package availability

import (
	"time"

	"planwise-api/core/database"
	"planwise-api/core/middleware"
	"planwise-api/modules/availability/controller"
	"planwise-api/modules/availability/repository"
	"planwise-api/modules/availability/router"
	"planwise-api/modules/availability/service"
	groupservice "planwise-api/modules/group/service"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	DB       database.IDatabase
	Groups   service.GroupDirectory
	Notifier groupservice.ChangeNotifier
	Location *time.Location
	Timeout  time.Duration
}

func Init(v1 *echo.Group, deps Deps, mw *middleware.Middleware, limiter echo.MiddlewareFunc) *service.AvailabilityService {
	repo := repository.NewAvailabilityRepository(deps.DB)
	svc := service.NewAvailabilityService(repo, deps.Groups, deps.Notifier, deps.Location, deps.Timeout)
	ctrl := controller.NewAvailabilityController(svc)

	router.NewAvailabilityRouter(ctrl).Register(v1, mw, limiter)

	return svc
}
