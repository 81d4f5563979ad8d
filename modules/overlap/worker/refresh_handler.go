package worker

import (
	"context"
	"fmt"

	"planwise-api/core/constants"
	"planwise-api/core/errors"
	"planwise-api/core/logger"
	"planwise-api/core/queue"
	"planwise-api/modules/overlap/dto"
	"planwise-api/modules/overlap/service"

	"github.com/hibiken/asynq"
)

// NewRefreshHandler recomputes and caches a group's overlap. Only store
// outages are retried.
func NewRefreshHandler(svc service.OverlapServiceInterface) func(ctx context.Context, task *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		var payload dto.RefreshPayload
		if err := queue.Decode(task, &payload); err != nil {
			logger.Error("OverlapWorker:Refresh:Decode", err)
			return err
		}

		if appErr := svc.Refresh(ctx, payload.GroupID); appErr != nil {
			logger.Warn("OverlapWorker:Refresh", "group_id", payload.GroupID, "error", appErr)
			if !errors.HasCode(appErr, errors.ErrUnavailable) {
				return fmt.Errorf("%w: %w", appErr, asynq.SkipRetry)
			}
			return appErr
		}
		return nil
	}
}

func Register(w *queue.Worker, svc service.OverlapServiceInterface) {
	w.HandleFunc(constants.TaskOverlapRefresh, NewRefreshHandler(svc))
}
