package async

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

type recordingHandler struct {
	mu    sync.Mutex
	seen  map[string]constants.JobKind
	fail  map[string]bool
	block chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{seen: map[string]constants.JobKind{}, fail: map[string]bool{}}
}

func (h *recordingHandler) ProcessPath(ctx context.Context, path string, kind constants.JobKind) error {
	if h.block != nil {
		<-h.block
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen[path] = kind
	if h.fail[path] {
		return errors.New("boom")
	}
	return nil
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

func TestProcessorQueue_DrainsOnShutdown(t *testing.T) {
	h := newRecordingHandler()
	h.fail["b.pdf"] = true
	q := NewProcessorQueue(h, nil, WithWorkers(2), WithQueueSize(8))

	for _, p := range []string{"a.pdf", "b.pdf", "c.txt"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: p, Kind: constants.JobKindLand}))
	}
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "d.docx", Kind: constants.JobKindContract}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	assert.Equal(t, 4, h.count())
	assert.Equal(t, constants.JobKindContract, h.seen["d.docx"])
}

func TestProcessorQueue_EnqueueAfterShutdown(t *testing.T) {
	q := NewProcessorQueue(newRecordingHandler(), nil, WithWorkers(1))
	q.Shutdown(context.Background())
	q.Shutdown(context.Background())

	err := q.Enqueue(context.Background(), Job{Path: "late.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)
}

func TestProcessorQueue_BackpressureRespectsContext(t *testing.T) {
	h := newRecordingHandler()
	h.block = make(chan struct{})
	q := NewProcessorQueue(h, nil, WithWorkers(1), WithQueueSize(1))

	// one job held by the worker, one in the buffer
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "1"}))
	require.Eventually(t, func() bool { return len(q.ch) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "2"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := q.Enqueue(ctx, Job{Path: "3"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(h.block)
	q.Shutdown(context.Background())
	assert.Equal(t, 2, h.count())
}
