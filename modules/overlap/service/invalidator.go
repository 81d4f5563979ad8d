package service

import (
	"context"

	"planwise-api/core/constants"
	"planwise-api/core/logger"
	"planwise-api/core/queue"
	"planwise-api/modules/overlap/dto"
	"planwise-api/modules/overlap/repository"

	"github.com/google/uuid"
)

// Invalidator retires a group's cached overlap when its members or their
// slots change, then asks the worker to recompute it. Failures are logged
// only, since the change itself has already been committed. If neither the
// bump nor the fallback delete reaches Redis, the old overlap can be served
// until redis.overlap_ttl expires.
type Invalidator struct {
	cache repository.OverlapCacheInterface
	queue queue.Enqueuer
}

// NewInvalidator accepts a nil cache when caching is disabled.
func NewInvalidator(cache repository.OverlapCacheInterface, enqueuer queue.Enqueuer) *Invalidator {
	if enqueuer == nil {
		enqueuer = queue.Noop{}
	}
	return &Invalidator{cache: cache, queue: enqueuer}
}

func (i *Invalidator) NotifyGroupChanged(ctx context.Context, groupID uuid.UUID) {
	if i.cache == nil {
		return
	}

	gen, err := i.cache.Bump(ctx, groupID)
	if err != nil {
		logger.Warn("Invalidator:NotifyGroupChanged:Bump", "group_id", groupID, "error", err)
		if dropErr := i.cache.Drop(ctx, groupID); dropErr != nil {
			logger.Error("Invalidator:NotifyGroupChanged:Drop", "group_id", groupID, "error", dropErr)
		}
		return
	}

	if err := i.queue.Enqueue(ctx, constants.TaskOverlapRefresh, dto.RefreshPayload{GroupID: groupID}); err != nil {
		logger.Warn("Invalidator:NotifyGroupChanged:Enqueue", "group_id", groupID, "error", err)
		return
	}
	logger.Debug("Invalidator:NotifyGroupChanged", "group_id", groupID, "generation", gen)
}
