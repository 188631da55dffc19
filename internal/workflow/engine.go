package workflow

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"webmark/internal/archive"
	"webmark/internal/bookmark"
	"webmark/internal/config"
	"webmark/internal/logging"
	"webmark/internal/notifications"
	"webmark/internal/queue"
	"webmark/internal/services"
	"webmark/internal/services/reader"
	"webmark/internal/services/screenshot"
	"webmark/internal/step"
)

// InfoGenerator produces the structured bookmark document for a page.
type InfoGenerator interface {
	GenerateStructuredInfo(ctx context.Context, rawURL, content, search string) (string, error)
}

// NoteWriter persists rendered notes and their screenshot attachments.
type NoteWriter interface {
	WriteNote(rec bookmark.Record, body string) (string, error)
	PlaceScreenshot(rec bookmark.Record, png []byte) (string, error)
}

// HistoryRecorder persists run outcomes for the history command. Writes are
// best-effort; the engine logs failures and moves on.
type HistoryRecorder interface {
	RecordSuccess(ctx context.Context, entry archive.Entry) (int64, error)
	RecordFailure(ctx context.Context, entry archive.Entry) (int64, error)
}

// Services bundles the collaborators the engine drives. Reader, Generator,
// Screenshots, and Notes are required. History may be nil to disable run
// history; a nil Notifier is replaced with one built from the config.
type Services struct {
	Reader      reader.Client
	Generator   InfoGenerator
	Screenshots screenshot.Service
	Notes       NoteWriter
	History     HistoryRecorder
	Notifier    notifications.Service
}

// Engine drives queued items through their pipeline steps, one batch at a
// time. Runs are serialized by the coordinator; within a run, items execute
// strictly in queue order and steps strictly in pipeline order.
type Engine struct {
	cfg    *config.Config
	queue  *queue.Queue
	coord  *Coordinator
	svc    Services
	logger *slog.Logger
}

// NewEngine constructs an engine around the shared queue and coordinator.
func NewEngine(cfg *config.Config, q *queue.Queue, coord *Coordinator, svc Services, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	if svc.Notifier == nil {
		svc.Notifier = notifications.NewService(cfg)
	}
	return &Engine{
		cfg:    cfg,
		queue:  q,
		coord:  coord,
		svc:    svc,
		logger: logging.NewComponentLogger(logger, "workflow"),
	}
}

// Queue exposes the engine's queue so presenters can subscribe to its
// events.
func (e *Engine) Queue() *queue.Queue {
	return e.queue
}

// Coordinator exposes the run coordinator so signal handlers can address
// cancellation requests at the active run.
func (e *Engine) Coordinator() *Coordinator {
	return e.coord
}

// RunURLBatch validates, enqueues, and processes a batch of URLs. Any
// invalid URL rejects the whole batch before an item starts. A step failure
// fails its item and the batch moves on; a cancellation aborts the batch at
// the next step boundary, leaving unprocessed items on the queue. The queue
// is cleared only when every item was attempted.
func (e *Engine) RunURLBatch(ctx context.Context, urls []string, mode step.Mode) (*BatchResult, error) {
	cleaned := make([]string, 0, len(urls))
	for _, raw := range urls {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return nil, services.Wrap(services.ErrValidation, "workflow", "run", "no urls supplied", nil)
	}
	for _, u := range cleaned {
		if err := reader.ValidateURL(u); err != nil {
			return nil, err
		}
	}

	ownerID, ok := e.coord.TryAcquire()
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "workflow", "run", "another run is in progress", nil)
	}
	defer e.coord.Release(ownerID)

	for _, u := range cleaned {
		e.queue.Add(u, mode)
	}

	start := time.Now()
	e.logger.InfoContext(ctx, "batch started",
		logging.Int("items", len(cleaned)),
		logging.String(logging.FieldMode, string(mode)),
	)
	e.notifyBatchStarted(ctx, len(cleaned))

	result := &BatchResult{Total: len(cleaned)}
	for idx := 0; idx < result.Total; idx++ {
		item := e.queue.Read(idx)
		if item == nil {
			break
		}
		err := e.runItem(ctx, ownerID, idx, item)
		switch {
		case err == nil:
			result.Succeeded++
		case errors.Is(err, services.ErrCancelled):
			result.Cancelled = true
			e.logger.InfoContext(ctx, "batch cancelled",
				logging.Int("processed", result.Succeeded+result.Failed),
				logging.Int("remaining", result.Total-result.Succeeded-result.Failed),
			)
			return result, err
		default:
			result.Failed++
		}
	}

	e.queue.Clear()
	duration := time.Since(start)
	e.logger.InfoContext(ctx, "batch completed",
		logging.Int("succeeded", result.Succeeded),
		logging.Int("failed", result.Failed),
		logging.Duration("duration", duration),
	)
	e.notifyBatchCompleted(ctx, result, duration)
	return result, nil
}

// RunYAML parses a hand-written YAML bookmark document and runs it through
// the screenshot and note steps under the same lock and cancellation
// contract as a batch. Validation happens before any network or file call.
func (e *Engine) RunYAML(ctx context.Context, raw string) (*ItemResult, error) {
	rec, err := bookmark.Parse(raw)
	if err != nil {
		return nil, err
	}

	ownerID, ok := e.coord.TryAcquire()
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "workflow", "run", "another run is in progress", nil)
	}
	defer e.coord.Release(ownerID)

	idx := e.queue.Add(rec.URL, step.ModeSimple)
	st := newItemState(rec.URL, step.ModeSimple, time.Now())
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = st.addedAt
	}
	st.record = rec

	runCtx := services.WithItemURL(ctx, st.url)
	for _, def := range step.Ordering(step.ModeSimple) {
		if stepErr := e.executeStep(runCtx, ownerID, idx, def, st); stepErr != nil {
			if errors.Is(stepErr, services.ErrCancelled) {
				return nil, stepErr
			}
			e.recordFailure(runCtx, st, stepErr)
			e.notifyItemFailed(runCtx, st.url, stepErr)
			e.queue.Clear()
			return nil, stepErr
		}
	}

	e.recordSuccess(runCtx, st)
	e.queue.Clear()
	return &ItemResult{URL: st.url, Title: st.record.Title, NotePath: st.notePath}, nil
}
