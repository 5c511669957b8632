package service

import (
	"context"

	"proforma-tool/domain"
)

// Task is a fire-and-forget operation running on its own goroutine.
type Task struct {
	done chan struct{}
	err  error
}

func runTask(fn func() error) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = fn()
	}()
	return t
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// StartAsync runs Start in the background.
func (s *ProFormaSession) StartAsync(ctx context.Context) *Task {
	return runTask(func() error {
		return s.Start(ctx)
	})
}

// SaveAsync takes the save snapshot now, so a rejected save alerts the user
// before it returns and later edits do not leak into the request, then sends
// it in the background.
func (s *ProFormaSession) SaveAsync(ctx context.Context) (*Task, error) {
	snap, err := s.takeSaveSnapshot()
	if err != nil {
		return nil, err
	}

	return runTask(func() error {
		_, err := s.send(ctx, snap)
		return err
	}), nil
}

// LoadAsync runs Load in the background.
func (s *ProFormaSession) LoadAsync(ctx context.Context, id domain.ScenarioID) *Task {
	return runTask(func() error {
		return s.Load(ctx, id)
	})
}
