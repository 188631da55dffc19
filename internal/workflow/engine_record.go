package workflow

import (
	"context"
	"errors"
	"time"

	"webmark/internal/archive"
	"webmark/internal/logging"
)

// Archive rows and notifications are observability, not pipeline state:
// every failure here is logged and swallowed so a history or ntfy problem
// can never fail an item.

func (e *Engine) recordSuccess(ctx context.Context, st *itemState) {
	if e.svc.History == nil {
		return
	}
	entry := archive.Entry{
		URL:       st.url,
		Title:     st.record.Title,
		NotePath:  st.notePath,
		Mode:      st.mode,
		CreatedAt: st.addedAt,
	}
	if _, err := e.svc.History.RecordSuccess(ctx, entry); err != nil {
		logging.WithContext(ctx, e.logger).WarnContext(ctx, "history write failed", logging.Error(err))
	}
}

func (e *Engine) recordFailure(ctx context.Context, st *itemState, cause error) {
	if e.svc.History == nil {
		return
	}
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	entry := archive.Entry{
		URL:          st.url,
		Title:        st.record.Title,
		ErrorMessage: message,
		Mode:         st.mode,
		CreatedAt:    st.addedAt,
	}
	if _, err := e.svc.History.RecordFailure(ctx, entry); err != nil {
		logging.WithContext(ctx, e.logger).WarnContext(ctx, "history write failed", logging.Error(err))
	}
}

func (e *Engine) notifyBatchStarted(ctx context.Context, count int) {
	if e.svc.Notifier == nil {
		return
	}
	if err := e.svc.Notifier.BatchStarted(ctx, count); err != nil {
		if errors.Is(err, context.Canceled) {
			e.logger.DebugContext(ctx, "shutting down, batch start notification dropped")
		} else {
			e.logger.DebugContext(ctx, "batch start notification failed", logging.Error(err))
		}
	}
}

func (e *Engine) notifyBatchCompleted(ctx context.Context, result *BatchResult, duration time.Duration) {
	if e.svc.Notifier == nil {
		return
	}
	if err := e.svc.Notifier.BatchCompleted(ctx, result.Succeeded, result.Failed, duration); err != nil {
		if errors.Is(err, context.Canceled) {
			e.logger.DebugContext(ctx, "shutting down, batch completion notification dropped")
		} else {
			e.logger.DebugContext(ctx, "batch completion notification failed", logging.Error(err))
		}
	}
}

func (e *Engine) notifyItemFailed(ctx context.Context, url string, cause error) {
	if e.svc.Notifier == nil {
		return
	}
	if err := e.svc.Notifier.ItemFailed(ctx, url, cause); err != nil {
		if errors.Is(err, context.Canceled) {
			e.logger.DebugContext(ctx, "shutting down, item failure notification dropped")
		} else {
			e.logger.DebugContext(ctx, "item failure notification failed", logging.Error(err))
		}
	}
}
