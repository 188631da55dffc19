package main

import (
	"fmt"
	"io"
	"sync"

	"webmark/internal/queue"
	"webmark/internal/step"
)

// presenter turns queue events into terminal progress lines. Listeners run
// synchronously under the queue lock, so handlers only format and write.
// Progress-only deltas are skipped because a line-oriented terminal cannot
// redraw them usefully; step status transitions are what the user sees.
type presenter struct {
	out      io.Writer
	queue    *queue.Queue
	colorize bool

	mu      sync.Mutex
	started map[int]bool

	token int
}

func newPresenter(out io.Writer, q *queue.Queue) *presenter {
	p := &presenter{
		out:      out,
		queue:    q,
		colorize: shouldColorize(out),
		started:  make(map[int]bool),
	}
	p.token = q.Subscribe(queue.EventUpdate, p.onUpdate)
	return p
}

func (p *presenter) close() {
	p.queue.Unsubscribe(queue.EventUpdate, p.token)
}

func (p *presenter) onUpdate(evt queue.Event) {
	if evt.OldStatus == evt.NewStatus {
		return
	}
	def, ok := step.Lookup(evt.StepID)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch evt.NewStatus {
	case step.StatusProcessing:
		if !p.started[evt.Index] {
			p.started[evt.Index] = true
			fmt.Fprintf(p.out, "[%d/%d] %s\n", evt.Index+1, evt.Count, evt.URL)
		}
	case step.StatusCompleted:
		fmt.Fprintln(p.out, renderStatusLine(def.Title, statusOK, "", p.colorize))
	case step.StatusFailed:
		fmt.Fprintln(p.out, renderStatusLine(def.Title, statusError, "failed, see log", p.colorize))
	}
}
