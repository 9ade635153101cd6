package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdftoolkit/pdf"
)

type recordingView struct {
	mu       sync.Mutex
	percents []int
	logs     []string
	done     int
	failures []string
}

func (v *recordingView) ApplyProgress(_ Kind, percent, _, _ int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.percents = append(v.percents, percent)
}

func (v *recordingView) AppendLog(_ Kind, text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.logs = append(v.logs, text)
}

func (v *recordingView) TaskDone() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.done++
}

func (v *recordingView) TaskFailed(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.failures = append(v.failures, message)
}

func (v *recordingView) terminals() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done + len(v.failures)
}

// waitForTerminal waits until the view saw a terminal callback and Poll has
// returned the runner to idle.
func waitForTerminal(t *testing.T, r *Runner, view *recordingView) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if view.terminals() > 0 && !r.IsRunning() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("timed out waiting for the consumer to see a terminal event")
}

func TestPoll(t *testing.T) {
	t.Run("applies events and idles the runner on Done", func(t *testing.T) {
		r, _ := newTestRunner(t)
		doc := writeDoc(t, t.TempDir(), "doc.pdf", "one\ntwo")

		view := &recordingView{}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go Poll(ctx, r, time.Millisecond, view)

		require.NoError(t, r.Start(NewSpec(ConvertParams{PDFPath: doc})))
		waitForTerminal(t, r, view)

		view.mu.Lock()
		defer view.mu.Unlock()
		assert.Equal(t, 1, view.done)
		assert.Empty(t, view.failures)
		require.NotEmpty(t, view.percents)
		assert.Equal(t, 100, view.percents[len(view.percents)-1])
		assert.Contains(t, view.logs[len(view.logs)-1], "generated:")
		assert.False(t, r.IsRunning(), "Poll must return the runner to idle")
	})

	t.Run("routes Error to TaskFailed and idles the runner", func(t *testing.T) {
		cfg := testConfig(t)
		r := NewRunner(cfg, failingLibrary{pdf.NewPlainLibrary()}, nil)
		doc := writeDoc(t, t.TempDir(), "doc.pdf", "p1")

		view := &recordingView{}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go Poll(ctx, r, time.Millisecond, view)

		require.NoError(t, r.Start(NewSpec(SearchParams{PDFPath: doc, Queries: []string{"x"}})))
		waitForTerminal(t, r, view)

		view.mu.Lock()
		defer view.mu.Unlock()
		assert.Equal(t, 0, view.done)
		require.Len(t, view.failures, 1)
		assert.Contains(t, view.failures[0], "corrupt document")
		assert.False(t, r.IsRunning())
	})
}
