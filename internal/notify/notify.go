// Package notify delivers transient user-facing feedback for the
// outcome of actions, the CLI equivalent of the web client's toasts.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives user-facing feedback messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Writer prints feedback lines to an io.Writer, one per message.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a Writer notifier.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Success(msg string) { w.print("ok", msg) }
func (w *Writer) Error(msg string)   { w.print("error", msg) }
func (w *Writer) Info(msg string)    { w.print("info", msg) }

func (w *Writer) print(level, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "[%s] %s\n", level, msg)
}

// Silent discards all feedback.
type Silent struct{}

func (Silent) Success(string) {}
func (Silent) Error(string)   {}
func (Silent) Info(string)    {}

// Recorder captures feedback for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
	Infos     []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, msg)
}
