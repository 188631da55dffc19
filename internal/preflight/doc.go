// Package preflight provides readiness checks for the filesystem paths,
// credentials, and external endpoints a run depends on.
//
// The checks run in two contexts:
//   - The pipeline commands (add, yaml, run) call RunEssential before
//     starting a batch, failing fast on missing directories or disk space
//     instead of partway through a run.
//   - The doctor command calls RunAll, which adds network reachability
//     probes and the browser binary check, and renders every result.
//
// Checks that guard degradable behavior (missing API keys, a missing
// browser when screenshots are optional) report warnings instead of
// blocking failures.
package preflight
