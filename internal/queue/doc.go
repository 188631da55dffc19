// Package queue holds the in-memory work queue that feeds the pipelines.
//
// The queue is an ordered list of items, each carrying a per-step status map
// sized by the item's mode. Mutating methods emit typed events to subscribed
// listeners synchronously, under the queue lock, so presenters observe every
// transition in the order it happened and always see an update before the
// next step begins. The queue itself enforces no single-flight policy; the
// workflow coordinator prevents two pipelines from interleaving.
package queue
