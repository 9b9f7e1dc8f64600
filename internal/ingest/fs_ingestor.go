package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/async"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

// FSIngestor reads from the local filesystem and hands files to the queue.
// Content already queued in this process is skipped unless Force is set.
type FSIngestor struct {
	Queue  async.Queue
	Force  bool
	logger *slog.Logger

	mu   sync.Mutex
	seen map[string]string // content hash -> first path
}

func NewFSIngestor(q async.Queue, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{Queue: q, logger: logger, seen: map[string]string{}}
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string, kind constants.JobKind) (IngestionResult, error) {
	var out IngestionResult

	abs, err := filepath.Abs(path)
	if err != nil {
		return out, fmt.Errorf("abs path: %w", err)
	}
	if kind == "" {
		kind = constants.JobKindLand
	}
	out = IngestionResult{SourcePath: abs, Kind: kind}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if !AllowedExt(ext) {
		i.logger.Warn("ingest.file.unsupported", "path", abs, "ext", ext)
		return out, common.NewUnsupportedFileTypeError(filepath.Base(abs), ext)
	}

	sum, err := hashFile(abs)
	if err != nil {
		i.logger.Error("ingest.file.hash_failed", "path", abs, "error", err)
		return out, err
	}
	out.HashHex = sum

	if !i.Force && i.markSeen(sum, abs) {
		out.Deduplicated = true
		i.logger.Info("ingest.file.deduplicated", "path", abs, "hash", sum)
		return out, nil
	}

	job := async.Job{Path: abs, Kind: kind, SubmittedAt: time.Now().UTC(), TraceID: uuid.NewString()}
	if err := i.Queue.Enqueue(ctx, job); err != nil {
		i.forget(sum)
		return out, err
	}
	out.TraceID = job.TraceID
	out.QueuedAt = job.SubmittedAt
	return out, nil
}

// IngestDirectory walks root, skips hidden entries if requested, and calls
// IngestPath for each supported file. Per-file failures never stop the walk.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, kind constants.JobKind, skipHidden bool) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, fmt.Errorf("%w: root_path is required", common.ErrInvalidInput)
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Kind: kind, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path, kind)
		if err != nil {
			r.Err = err.Error()
			results = append(results, r)
			stats.Failed++
			return nil
		}
		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	i.logger.Info("ingest.directory.done",
		"root", root,
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}

// Watch queues every supported file that appears under the configured roots
// until ctx is done.
func (i *FSIngestor) Watch(ctx context.Context, cfg WatchConfig, kind constants.JobKind) error {
	events, errs, err := StartWatcher(ctx, cfg, i.logger)
	if err != nil {
		return err
	}
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			if _, err := i.IngestPath(ctx, path, kind); err != nil && !errors.Is(err, context.Canceled) {
				i.logger.Warn("ingest.watch.skipped", "path", path, "error", err)
			}
		case err, ok := <-errs:
			if ok && err != nil {
				i.logger.Warn("ingest.watch.error", "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (i *FSIngestor) markSeen(sum, path string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.seen[sum]; ok {
		return true
	}
	i.seen[sum] = path
	return false
}

func (i *FSIngestor) forget(sum string) {
	i.mu.Lock()
	delete(i.seen, sum)
	i.mu.Unlock()
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
