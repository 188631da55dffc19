// Package services defines shared utilities consumed by the workflow steps
// and the remote-service clients.
//
// Key responsibilities:
//   - Context helpers that stamp item URLs, step identifiers, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification uniform across the pipeline (validation vs remote vs
//     persistence vs cancellation).
//   - The shared StatusError type clients raise for non-success HTTP
//     responses before mapping them onto markers.
//
// Use these helpers when wiring new step logic so operational behaviour
// (error handling, observability) stays uniform across the pipeline.
package services
