package workflow

import (
	"time"

	"webmark/internal/queue"
)

// progressCap is where the estimator parks until the step actually
// finishes. Only a real completion moves a step to 100.
const progressCap = 99.0

// progressEstimator advances a step's cosmetic percentage toward the cap
// based on the step's estimated duration. It never affects step outcome.
type progressEstimator struct {
	stop chan struct{}
	done chan struct{}
}

func startProgressEstimator(q *queue.Queue, stepID string, index int, estimated time.Duration) *progressEstimator {
	e := &progressEstimator{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	if estimated <= 0 {
		estimated = 5 * time.Second
	}
	interval := estimated / 50
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}

	start := time.Now()
	go func() {
		defer close(e.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-e.stop:
				return
			case <-ticker.C:
				pct := time.Since(start).Seconds() / estimated.Seconds() * 100
				if pct > progressCap {
					pct = progressCap
				}
				q.SetProgress(stepID, pct, index)
			}
		}
	}()
	return e
}

// halt stops the estimator and waits for its goroutine to exit, so no tick
// can land after the step's final status is written.
func (e *progressEstimator) halt() {
	close(e.stop)
	<-e.done
}
