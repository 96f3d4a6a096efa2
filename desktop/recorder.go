package desktop

import (
	"context"
	"sync"
)

// Recorder is an Applier that only remembers what it was asked to apply.
// Err, when set, is returned from every Apply call after recording it.
type Recorder struct {
	Err error

	mu    sync.Mutex
	calls []string
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) Apply(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, path)
	return r.Err
}

// Calls returns the paths passed to Apply, oldest first.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
