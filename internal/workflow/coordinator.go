package workflow

import (
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Coordinator enforces single-flight execution: at most one run owns the
// pipeline at a time, and cancellation requests are scoped to the owning
// run's identity so a stale request can never abort a later run.
//
// An optional file lock extends the guarantee across processes; the
// in-process state stays authoritative within this process.
type Coordinator struct {
	mu              sync.Mutex
	running         bool
	ownerID         string
	cancelRequested bool
	cancelOwnerID   string
	fileLock        *flock.Flock
}

// NewCoordinator returns an in-process coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// NewCoordinatorWithLockFile returns a coordinator that additionally guards
// the given lock file, so two processes cannot run batches concurrently.
func NewCoordinatorWithLockFile(path string) *Coordinator {
	return &Coordinator{fileLock: flock.New(path)}
}

// TryAcquire claims the pipeline for a new run. It returns a fresh owner ID
// on success and ok == false when another run already holds it.
func (c *Coordinator) TryAcquire() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return "", false
	}
	if c.fileLock != nil {
		locked, err := c.fileLock.TryLock()
		if err != nil || !locked {
			return "", false
		}
	}

	c.running = true
	c.ownerID = uuid.NewString()
	c.cancelRequested = false
	c.cancelOwnerID = ""
	return c.ownerID, true
}

// Release returns the pipeline to idle. Cancellation flags reset on every
// release, including releases of cancelled runs, so they cannot leak into
// the next run. A release with a non-matching owner ID is ignored.
func (c *Coordinator) Release(ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.ownerID != ownerID {
		return
	}

	c.running = false
	c.ownerID = ""
	c.cancelRequested = false
	c.cancelOwnerID = ""
	if c.fileLock != nil {
		_ = c.fileLock.Unlock()
	}
}

// RequestCancellation asks the identified run to stop at its next step
// boundary. It reports whether the request was accepted; requests against
// a finished or different run are rejected.
func (c *Coordinator) RequestCancellation(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.ownerID != ownerID {
		return false
	}
	c.cancelRequested = true
	c.cancelOwnerID = ownerID
	return true
}

// CancellationRequested reports whether a cancellation is pending for the
// identified run.
func (c *Coordinator) CancellationRequested(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running && c.ownerID == ownerID && c.cancelRequested && c.cancelOwnerID == ownerID
}

// CurrentOwner returns the owner ID of the run holding the pipeline, or ""
// when idle. Signal handlers use it to address a cancellation at whatever
// run is active when the signal lands.
func (c *Coordinator) CurrentOwner() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ownerID
}
