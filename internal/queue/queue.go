package queue

import (
	"sync"
	"time"

	"webmark/internal/step"
)

// StepState tracks one pipeline step of one item. Progress is a cosmetic
// percentage for presenters; only Status carries meaning.
type StepState struct {
	Status   step.Status
	Progress float64
}

// Item is one queued URL together with its per-step status map. The map keys
// are the step IDs of the ordering for the item's mode.
type Item struct {
	URL     string
	Mode    step.Mode
	AddedAt time.Time
	Steps   map[string]*StepState
}

func (i *Item) clone() *Item {
	if i == nil {
		return nil
	}
	out := &Item{URL: i.URL, Mode: i.Mode, AddedAt: i.AddedAt, Steps: make(map[string]*StepState, len(i.Steps))}
	for id, state := range i.Steps {
		copied := *state
		out.Steps[id] = &copied
	}
	return out
}

// Queue is the ordered holding area for items awaiting processing. All
// methods are safe for concurrent use; mutations and their events are
// serialized under one lock so listeners observe them in order.
type Queue struct {
	mu           sync.Mutex
	items        []*Item
	listeners    map[EventType][]registration
	nextListener int
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{listeners: make(map[EventType][]registration)}
}

// Add appends an item whose step map is initialized to pending for every
// step of the ordering matching mode. It returns the item's position.
func (q *Queue) Add(url string, mode step.Mode) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := &Item{URL: url, Mode: mode, AddedAt: time.Now(), Steps: make(map[string]*StepState)}
	for _, def := range step.Ordering(mode) {
		item.Steps[def.ID] = &StepState{Status: step.StatusPending}
	}
	q.items = append(q.items, item)
	position := len(q.items) - 1

	q.emit(Event{Type: EventAdd, URL: url, Mode: mode, Index: position, Count: len(q.items)})
	return position
}

// Read returns a copy of the item at index without removing it, or nil when
// the index is out of bounds. Read never panics.
func (q *Queue) Read(index int) *Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return nil
	}
	item := q.items[index].clone()
	q.emit(Event{Type: EventRead, URL: item.URL, Index: index, Count: len(q.items), Item: item})
	return item
}

// Remove pops the head item. On an empty queue it returns nil and emits
// nothing.
func (q *Queue) Remove() *Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	item := q.items[0]
	q.items = q.items[1:]
	q.emit(Event{Type: EventRemove, URL: item.URL, Count: len(q.items), Item: item.clone()})
	return item
}

// Clear discards every queued item.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	discarded := len(q.items)
	q.items = nil
	q.emit(Event{Type: EventClear, Count: discarded})
}

// Update transitions one step of the item at index. It silently no-ops when
// the index is out of range or the item does not carry the step.
func (q *Queue) Update(stepID string, status step.Status, index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return
	}
	item := q.items[index]
	state, ok := item.Steps[stepID]
	if !ok {
		return
	}
	old := state.Status
	state.Status = status
	if status == step.StatusCompleted {
		state.Progress = 100
	}

	q.emit(Event{Type: EventUpdate, URL: item.URL, Index: index, Count: len(q.items), StepID: stepID, OldStatus: old, NewStatus: status, Progress: state.Progress})
}

// SetProgress records a cosmetic progress percentage for one step. Same
// no-op rules as Update; the emitted event keeps OldStatus == NewStatus.
func (q *Queue) SetProgress(stepID string, pct float64, index int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.items) {
		return
	}
	item := q.items[index]
	state, ok := item.Steps[stepID]
	if !ok {
		return
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	state.Progress = pct

	q.emit(Event{Type: EventUpdate, URL: item.URL, Index: index, Count: len(q.items), StepID: stepID, OldStatus: state.Status, NewStatus: state.Status, Progress: pct})
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Items returns a snapshot copy of the queue contents in order.
func (q *Queue) Items() []*Item {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]*Item, len(q.items))
	for i, item := range q.items {
		out[i] = item.clone()
	}
	return out
}
