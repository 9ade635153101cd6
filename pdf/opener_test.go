package pdf

import (
	"path/filepath"
	"testing"
	"time"
)

func TestOpeners(t *testing.T) {
	t.Run("nop opener does nothing", func(t *testing.T) {
		NopOpener{}.Open("anything.pdf")
	})

	t.Run("default opener returns promptly and swallows failures", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "missing.pdf")

		done := make(chan struct{})
		go func() {
			// Whether the platform launcher exists or not, Open must come
			// back immediately and never surface an error.
			DefaultAppOpener{}.Open(missing)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Open must not block on the launched process")
		}
	})
}
