package worker

import (
	"time"

	"github.com/semprofile/mapper/engine"
)

// Job is one semantic operation call queued on the pool.
type Job struct {
	// ID is the caller's identifier for this job, echoed on its result.
	ID string

	// Invocation names the operation and its inputs.
	Invocation engine.Invocation
}

// JobResult is the outcome of one job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Output holds the mapped response properties on success.
	Output map[string]any

	// Error contains any error raised by the invocation.
	Error error

	// Duration is the time taken by the invocation.
	Duration time.Duration
}
