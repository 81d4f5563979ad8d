package counter

import (
	"time"

	"planwise-api/core/database"
	"planwise-api/core/middleware"
	"planwise-api/modules/counter/controller"
	"planwise-api/modules/counter/repository"
	"planwise-api/modules/counter/router"
	"planwise-api/modules/counter/service"

	"github.com/labstack/echo/v4"
)

func Init(v1 *echo.Group, db database.IDatabase, timeout time.Duration, mw *middleware.Middleware) *service.CounterService {
	repo := repository.NewCounterRepository(db)
	svc := service.NewCounterService(repo, timeout)
	ctrl := controller.NewCounterController(svc)

	router.NewCounterRouter(ctrl).Register(v1, mw)

	return svc
}
