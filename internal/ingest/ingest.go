package ingest

import (
	"context"
	"time"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
)

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath   string            `json:"sourcePath"`
	Kind         constants.JobKind `json:"kind"`
	TraceID      string            `json:"traceId,omitempty"`
	Deduplicated bool              `json:"deduplicated"`
	HashHex      string            `json:"contentHashHex,omitempty"`
	QueuedAt     time.Time         `json:"queuedAt,omitzero"`
	Err          string            `json:"error,omitempty"`
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32 `json:"scanned"`
	Matched      uint32 `json:"matched"`
	Succeeded    uint32 `json:"succeeded"`
	Deduplicated uint32 `json:"deduplicated"`
	Failed       uint32 `json:"failed"`
}

// Ingestor is the behavior the server and CLI depend on.
type Ingestor interface {
	// IngestPath queues a single file.
	IngestPath(ctx context.Context, path string, kind constants.JobKind) (IngestionResult, error)
	// IngestDirectory queues all matching files under root.
	IngestDirectory(ctx context.Context, root string, kind constants.JobKind, skipHidden bool) ([]IngestionResult, DirStats, error)
}
