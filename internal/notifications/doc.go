// Package notifications delivers run milestones via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Delivery failures are the caller's problem to log; nothing in the
// pipeline depends on a notification landing.
package notifications
