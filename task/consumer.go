package task

import (
	"context"
	"time"
)

// View receives the engine's events, applied by Poll in emission order. The
// caller owns the implementation; the engine only guarantees ordering and a
// single terminal callback per run.
type View interface {
	ApplyProgress(channel Kind, percent, current, total int)
	AppendLog(channel Kind, text string)
	TaskDone()
	TaskFailed(message string)
}

// DefaultPollInterval is how often the consumer loop drains the queue when
// the configuration does not say otherwise. The exact value is a display
// cadence, not a correctness constant.
const DefaultPollInterval = 150 * time.Millisecond

// Poll drains the runner's event queue at a fixed cadence and applies every
// event to the view. On a terminal event it returns the runner to idle; the
// runner never does that itself. Poll blocks until ctx is done.
func Poll(ctx context.Context, r *Runner, interval time.Duration, view View) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, e := range r.Events().Drain() {
				switch ev := e.(type) {
				case Progress:
					view.ApplyProgress(ev.Channel, ev.Percent, ev.Current, ev.Total)
				case Log:
					view.AppendLog(ev.Channel, ev.Text)
				case Done:
					view.TaskDone()
					r.Finish()
				case Error:
					view.TaskFailed(ev.Message)
					r.Finish()
				}
			}
		}
	}
}
