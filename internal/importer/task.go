// Package importer runs record imports as cancellable background tasks and
// hands each completed batch to the record store owner in one piece.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/store"
)

// DefaultTimeout bounds a single import when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Provider yields a batch of new records.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]model.ServiceRecord, error)
}

// Merger accepts a complete batch. *store.Owner implements it.
type Merger interface {
	Merge(source string, batch []model.ServiceRecord) (store.Store, error)
}

// State is the observable status of a Task.
type State int

const (
	Pending State = iota
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrCancelled is reported by tasks stopped with Cancel.
var ErrCancelled = errors.New("import cancelled")

// Task is one background import. The batch is merged only after the
// provider has returned it completely; failed tasks leave the store as is.
type Task struct {
	source string
	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state State
	added int
	err   error
}

// Start launches provider in the background and merges its batch into m.
// A timeout <= 0 uses DefaultTimeout.
func Start(ctx context.Context, p Provider, m Merger, timeout time.Duration, logger *zap.Logger) *Task {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	t := &Task{
		source: p.Name(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.run(ctx, p, m, logger.With(zap.String("source", t.source)))
	return t
}

func (t *Task) run(ctx context.Context, p Provider, m Merger, logger *zap.Logger) {
	defer close(t.done)
	defer t.cancel()

	logger.Debug("import started")
	batch, err := p.Fetch(ctx)
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		assignIDs(batch)
		_, err = m.Merge(t.source, batch)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		t.state = Failed
		t.err = fmt.Errorf("import from %s: %w", t.source, err)
		logger.Warn("import failed", zap.Error(err))
		return
	}
	t.state = Succeeded
	t.added = len(batch)
	logger.Debug("import succeeded", zap.Int("added", t.added))
}

// assignIDs gives records without an ID a fresh imported-<uuid> identifier.
func assignIDs(batch []model.ServiceRecord) {
	for i := range batch {
		if batch[i].ID == "" {
			batch[i].ID = model.NewID()
		}
	}
}

// Source names the provider the task runs.
func (t *Task) Source() string { return t.source }

// Done is closed once the task has succeeded or failed.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel stops a pending task. It has no effect on a finished one.
func (t *Task) Cancel() { t.cancel() }

// State returns the current state.
func (t *Task) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Wait blocks until the task finishes and returns the number of records
// added, or the failure.
func (t *Task) Wait() (int, error) {
	<-t.done
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.added, t.err
}
