package async

import (
	"context"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// Job is one file waiting to go through a pipeline.
type Job struct {
	Path        string
	Kind        constants.JobKind
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Handler runs a single job. pipeline.Processor satisfies it.
type Handler interface {
	ProcessPath(ctx context.Context, path string, kind constants.JobKind) error
}
