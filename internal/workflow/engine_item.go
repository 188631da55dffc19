package workflow

import (
	"context"
	"errors"
	"time"

	"webmark/internal/logging"
	"webmark/internal/queue"
	"webmark/internal/services"
	"webmark/internal/step"
)

func (e *Engine) runItem(ctx context.Context, ownerID string, idx int, item *queue.Item) error {
	runCtx := services.WithItemURL(ctx, item.URL)
	st := newItemState(item.URL, item.Mode, item.AddedAt)

	for _, def := range step.Ordering(item.Mode) {
		if err := e.executeStep(runCtx, ownerID, idx, def, st); err != nil {
			if errors.Is(err, services.ErrCancelled) {
				return err
			}
			e.recordFailure(runCtx, st, err)
			e.notifyItemFailed(runCtx, st.url, err)
			return err
		}
	}

	e.recordSuccess(runCtx, st)
	return nil
}

// executeStep runs one step of one item. Cancellation is honored before the
// step starts, leaving its status untouched; otherwise the step transitions
// pending -> processing -> completed or failed, and a failure is rethrown to
// the item boundary.
func (e *Engine) executeStep(ctx context.Context, ownerID string, idx int, def step.Definition, st *itemState) error {
	if e.coord.CancellationRequested(ownerID) {
		return services.Wrap(services.ErrCancelled, "workflow", def.ID, "cancellation requested", nil)
	}

	stepCtx := services.WithStep(ctx, def.ID)
	logger := logging.WithContext(stepCtx, e.logger)

	e.queue.Update(def.ID, step.StatusProcessing, idx)
	estimator := startProgressEstimator(e.queue, def.ID, idx, def.EstimatedDuration)

	start := time.Now()
	logger.DebugContext(stepCtx, "step started")

	fn := e.stepFuncFor(def.ID)
	var err error
	if fn == nil {
		err = services.Wrap(services.ErrConfiguration, "workflow", def.ID, "no handler bound", nil)
	} else {
		err = fn(stepCtx, st)
	}
	estimator.halt()

	if err != nil {
		e.queue.Update(def.ID, step.StatusFailed, idx)
		logger.ErrorContext(stepCtx, "step failed",
			logging.Error(err),
			logging.String("error_kind", services.FailureKind(err)),
			logging.Duration("step_duration", time.Since(start)),
		)
		return err
	}

	e.queue.Update(def.ID, step.StatusCompleted, idx)
	logger.InfoContext(stepCtx, "step completed",
		logging.Duration("step_duration", time.Since(start)),
	)
	return nil
}
