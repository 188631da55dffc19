package queue

import "webmark/internal/step"

// EventType names the queue mutations listeners can subscribe to.
type EventType string

const (
	EventAdd    EventType = "add"
	EventRead   EventType = "read"
	EventRemove EventType = "remove"
	EventClear  EventType = "clear"
	EventUpdate EventType = "update"
)

// Event carries the details of a single queue mutation. Fields are populated
// according to Type: Add fills URL/Mode/Index/Count, Read and Remove carry the
// touched Item, Clear reports the discarded Count, Update reports the step
// transition (OldStatus equals NewStatus for progress-only deltas).
type Event struct {
	Type      EventType
	URL       string
	Mode      step.Mode
	Index     int
	Count     int
	StepID    string
	OldStatus step.Status
	NewStatus step.Status
	Progress  float64
	Item      *Item
}

// Listener receives queue events synchronously, in mutation order, while the
// queue's lock is held. Listeners must not call back into the queue. A panic
// in a listener propagates to the caller of the mutating method.
type Listener func(Event)

type registration struct {
	id int
	fn Listener
}

// Subscribe registers a listener for one event type and returns a token for
// Unsubscribe. Listeners for the same type run in registration order.
func (q *Queue) Subscribe(eventType EventType, fn Listener) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextListener++
	id := q.nextListener
	q.listeners[eventType] = append(q.listeners[eventType], registration{id: id, fn: fn})
	return id
}

// Unsubscribe removes a previously registered listener. Unknown tokens are
// ignored.
func (q *Queue) Unsubscribe(eventType EventType, id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	regs := q.listeners[eventType]
	for i, reg := range regs {
		if reg.id == id {
			q.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// emit delivers the event to every listener of its type. Callers must hold
// q.mu.
func (q *Queue) emit(evt Event) {
	for _, reg := range q.listeners[evt.Type] {
		reg.fn(evt)
	}
}
