package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/landdoc-verifier/constants"
	"github.com/joseph-ayodele/landdoc-verifier/internal/async"
	"github.com/joseph-ayodele/landdoc-verifier/internal/common"
)

type fakeQueue struct {
	mu   sync.Mutex
	jobs []async.Job
}

func (q *fakeQueue) Enqueue(_ context.Context, job async.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Shutdown(context.Context) {}

func (q *fakeQueue) paths() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, 0, len(q.jobs))
	for _, j := range q.jobs {
		out = append(out, filepath.Base(j.Path))
	}
	return out
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestIngestPath(t *testing.T) {
	dir := t.TempDir()
	q := &fakeQueue{}
	ing := NewFSIngestor(q, nil)

	writeFile(t, filepath.Join(dir, "deed.pdf"), "pdf bytes")
	writeFile(t, filepath.Join(dir, "copy.pdf"), "pdf bytes")
	writeFile(t, filepath.Join(dir, "notes.xyz"), "?")

	r, err := ing.IngestPath(context.Background(), filepath.Join(dir, "deed.pdf"), "")
	require.NoError(t, err)
	assert.False(t, r.Deduplicated)
	assert.Equal(t, constants.JobKindLand, r.Kind)
	assert.NotEmpty(t, r.TraceID)
	assert.Len(t, r.HashHex, 64)

	r, err = ing.IngestPath(context.Background(), filepath.Join(dir, "copy.pdf"), constants.JobKindLand)
	require.NoError(t, err)
	assert.True(t, r.Deduplicated)

	_, err = ing.IngestPath(context.Background(), filepath.Join(dir, "notes.xyz"), constants.JobKindLand)
	assert.ErrorIs(t, err, common.ErrUnsupportedFileType)

	assert.Equal(t, []string{"deed.pdf"}, q.paths())

	ing.Force = true
	_, err = ing.IngestPath(context.Background(), filepath.Join(dir, "copy.pdf"), constants.JobKindContract)
	require.NoError(t, err)
	assert.Len(t, q.paths(), 2)
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pdf"), "a")
	writeFile(t, filepath.Join(dir, "sub", "b.png"), "b")
	writeFile(t, filepath.Join(dir, "sub", "c.txt"), "c")
	writeFile(t, filepath.Join(dir, "readme.md"), "ignored")
	writeFile(t, filepath.Join(dir, ".hidden", "d.pdf"), "d")
	writeFile(t, filepath.Join(dir, ".e.pdf"), "e")

	q := &fakeQueue{}
	results, stats, err := NewFSIngestor(q, nil).IngestDirectory(context.Background(), dir, constants.JobKindLand, true)
	require.NoError(t, err)

	assert.Len(t, results, 3)
	assert.EqualValues(t, 3, stats.Matched)
	assert.EqualValues(t, 3, stats.Succeeded)
	assert.EqualValues(t, 0, stats.Failed)
	assert.ElementsMatch(t, []string{"a.pdf", "b.png", "c.txt"}, q.paths())
}

func TestIngestDirectory_RequiresRoot(t *testing.T) {
	_, _, err := NewFSIngestor(&fakeQueue{}, nil).IngestDirectory(context.Background(), " ", constants.JobKindLand, true)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestStartWatcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "existing.pdf"), "x")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true, Debounce: 20 * time.Millisecond}, nil)
	require.NoError(t, err)

	next := func() string {
		select {
		case p := <-events:
			return filepath.Base(p)
		case <-time.After(3 * time.Second):
			return ""
		}
	}
	assert.Equal(t, "existing.pdf", next())

	writeFile(t, filepath.Join(dir, "ignored.md"), "x")
	writeFile(t, filepath.Join(dir, "new.jpg"), "x")
	assert.Equal(t, "new.jpg", next())

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, 3*time.Second, 10*time.Millisecond)
}

func TestWatchNewDir_OnlyDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "incoming")
	require.NoError(t, os.Mkdir(sub, 0o755))
	file := filepath.Join(dir, "deed.pdf")
	writeFile(t, file, "x")

	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	assert.False(t, watchNewDir(w, file))
	assert.False(t, watchNewDir(w, filepath.Join(dir, "gone")))
	assert.True(t, watchNewDir(w, sub))
	assert.Equal(t, []string{sub}, w.WatchList())
}

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{}, nil)
	require.Error(t, err)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/a/.git"))
	assert.False(t, IsHidden("."))
	assert.False(t, IsHidden("/a/b.pdf"))
}
