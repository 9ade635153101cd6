package task

import "sync"

// Kind identifies which of the five logical operation streams an event
// belongs to. The consumer uses it to route progress and log lines to the
// right display.
type Kind string

const (
	KindSearch  Kind = "search"
	KindNumber  Kind = "number"
	KindMerge   Kind = "merge"
	KindExtract Kind = "extract"
	KindConvert Kind = "convert"
)

// Event is the tagged union carried by the Queue. One task run emits any
// number of Progress and Log events in emission order, then exactly one
// terminal event: Done, or Error when the run failed. Done never follows
// Error.
type Event interface {
	isEvent()
}

// Progress reports units of work completed. Percent is monotonically
// non-decreasing within one run.
type Progress struct {
	Channel Kind `json:"channel"`
	Percent int  `json:"percent"`
	Current int  `json:"current"`
	Total   int  `json:"total"`
}

// Log is a free-form human-readable line.
type Log struct {
	Channel Kind   `json:"channel"`
	Text    string `json:"text"`
}

// Done terminates a run that completed naturally or was cancelled.
type Done struct{}

// Error terminates a run that failed.
type Error struct {
	Message string `json:"message"`
}

func (Progress) isEvent() {}
func (Log) isEvent()      {}
func (Done) isEvent()     {}
func (Error) isEvent()    {}

// Queue is an unbounded, order-preserving event queue shared by the running
// task (producer) and the consumer loop. Push never blocks the producer and
// Drain never blocks the consumer; it is bounded only by memory.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Drain returns everything queued so far in emission order, or nil when the
// queue is empty.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}
