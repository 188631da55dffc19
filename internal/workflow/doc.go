// Package workflow drives bookmark items through their pipeline steps.
//
// The Engine owns the run loop: it validates input, enqueues items, and
// executes each item's step ordering in sequence, recording outcomes to the
// archive and pushing notifications along the way. The Coordinator
// serializes runs (one per process via its mutex, one per machine via an
// optional lock file) and scopes cancellation requests to the run that owns
// the pipeline, so a request left over from one run can never abort the
// next.
//
// Cancellation is cooperative: it is checked only at step boundaries, which
// means an in-flight HTTP call finishes (or times out) before the abort
// lands. A cancelled batch leaves its unprocessed items on the queue.
package workflow
