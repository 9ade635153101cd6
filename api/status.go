package api

import (
	"fmt"
	"log"
	"sync"

	"pdftoolkit/task"
)

// ChannelProgress is the last progress seen on one operation stream.
type ChannelProgress struct {
	Percent int `json:"percent"`
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Snapshot is the JSON shape served for the active-task endpoint.
type Snapshot struct {
	State     string                        `json:"state"`
	TaskID    string                        `json:"taskId,omitempty"`
	Kind      task.Kind                     `json:"kind,omitempty"`
	Progress  map[task.Kind]ChannelProgress `json:"progress"`
	Logs      []string                      `json:"logs"`
	LastError string                        `json:"lastError,omitempty"`
}

// Status accumulates engine events into a pollable snapshot. It implements
// task.View; the server's single consumer loop is its only writer apart from
// TaskStarted.
type Status struct {
	mu        sync.Mutex
	state     string
	taskID    string
	kind      task.Kind
	progress  map[task.Kind]ChannelProgress
	logs      []string
	lastError string
}

func NewStatus() *Status {
	return &Status{
		state:    "idle",
		progress: make(map[task.Kind]ChannelProgress),
	}
}

// TaskStarted resets the snapshot for a fresh run.
func (s *Status) TaskStarted(spec task.TaskSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = "running"
	s.taskID = spec.ID
	s.kind = spec.Params.Kind()
	s.progress = make(map[task.Kind]ChannelProgress)
	s.logs = nil
	s.lastError = ""
}

func (s *Status) ApplyProgress(channel task.Kind, percent, current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[channel] = ChannelProgress{Percent: percent, Current: current, Total: total}
}

func (s *Status) AppendLog(channel task.Kind, text string) {
	line := fmt.Sprintf("[%s] %s", channel, text)
	log.Println(line)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, line)
}

func (s *Status) TaskDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = "idle"
}

func (s *Status) TaskFailed(message string) {
	log.Printf("task failed: %s", message)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = "idle"
	s.lastError = message
}

func (s *Status) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := make(map[task.Kind]ChannelProgress, len(s.progress))
	for k, v := range s.progress {
		progress[k] = v
	}
	logs := make([]string, len(s.logs))
	copy(logs, s.logs)

	return Snapshot{
		State:     s.state,
		TaskID:    s.taskID,
		Kind:      s.kind,
		Progress:  progress,
		Logs:      logs,
		LastError: s.lastError,
	}
}
