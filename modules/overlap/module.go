package overlap

import (
	"time"

	"planwise-api/core/cache"
	"planwise-api/core/middleware"
	"planwise-api/core/queue"
	"planwise-api/modules/overlap/controller"
	"planwise-api/modules/overlap/repository"
	"planwise-api/modules/overlap/router"
	"planwise-api/modules/overlap/service"
	"planwise-api/modules/overlap/worker"

	"github.com/labstack/echo/v4"
)

// Module owns the overlap cache. It is created before the group and
// availability modules because they report changes to its Invalidator.
type Module struct {
	cache       repository.OverlapCacheInterface
	Invalidator *service.Invalidator
	Service     *service.OverlapService
}

// New builds the invalidation side. c may be nil when Redis is disabled.
func New(c cache.Cache, ttl time.Duration, enqueuer queue.Enqueuer) *Module {
	m := &Module{}
	if c != nil {
		m.cache = repository.NewOverlapCache(c, ttl)
	}
	m.Invalidator = service.NewInvalidator(m.cache, enqueuer)
	return m
}

// Init registers the overlap route once members and slots are available.
func (m *Module) Init(v1 *echo.Group, members service.MemberSource, slots service.SlotSource, timeout time.Duration, mw *middleware.Middleware) *service.OverlapService {
	m.Service = service.NewOverlapService(members, slots, m.cache, timeout)
	ctrl := controller.NewOverlapController(m.Service)

	router.NewOverlapRouter(ctrl).Register(v1, mw)

	return m.Service
}

func (m *Module) RegisterWorker(w *queue.Worker) {
	worker.Register(w, m.Service)
}
