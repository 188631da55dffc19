package workflow

// BatchResult summarizes one URL batch run. Cancelled batches report the
// counts accumulated before the abort; the unprocessed remainder stays on
// the queue.
type BatchResult struct {
	Total     int
	Succeeded int
	Failed    int
	Cancelled bool
}

// Success reports whether every item in the batch completed.
func (r *BatchResult) Success() bool {
	return r != nil && !r.Cancelled && r.Failed == 0
}

// ItemResult describes the outcome of a single-item run.
type ItemResult struct {
	URL      string
	Title    string
	NotePath string
}
