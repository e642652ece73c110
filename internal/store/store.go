// Package store holds the append-only record collection and its single
// owner, which applies import batches atomically.
package store

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Tiliavir/dutyrep/internal/model"
)

// Store is an immutable snapshot of every known record. Version grows by one
// with every merged batch.
type Store struct {
	records []model.ServiceRecord
	version uint64
}

// New returns a store holding a copy of records at version 0.
func New(records []model.ServiceRecord) Store {
	cp := make([]model.ServiceRecord, len(records))
	copy(cp, records)
	return Store{records: cp}
}

// Records returns a copy of the snapshot's records in insertion order.
func (s Store) Records() []model.ServiceRecord {
	out := make([]model.ServiceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s Store) Len() int { return len(s.records) }

// Version identifies the snapshot; it changes whenever records are merged.
func (s Store) Version() uint64 { return s.version }

// Merge returns a new store with batch appended after the existing records.
// s is left untouched. An empty batch returns s unchanged.
func Merge(s Store, batch []model.ServiceRecord) Store {
	if len(batch) == 0 {
		return s
	}
	out := make([]model.ServiceRecord, 0, len(s.records)+len(batch))
	out = append(out, s.records...)
	out = append(out, batch...)
	return Store{records: out, version: s.version + 1}
}

// Owner is the single writer of the current snapshot. Readers receive
// immutable snapshots; writers hand it complete batches.
type Owner struct {
	mu      sync.Mutex
	current Store
	logger  *zap.Logger
}

// NewOwner creates an owner starting from initial.
func NewOwner(initial Store, logger *zap.Logger) *Owner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Owner{current: initial, logger: logger}
}

// Snapshot returns the current snapshot.
func (o *Owner) Snapshot() Store {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// ErrDuplicateID is returned when a batch reuses a record ID.
var ErrDuplicateID = errors.New("duplicate record id")

// Merge appends batch as one step and returns the resulting snapshot. A batch
// reusing an existing ID, or repeating one internally, is rejected whole and
// the snapshot is left unchanged.
func (o *Owner) Merge(source string, batch []model.ServiceRecord) (Store, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	seen := make(map[string]struct{}, len(o.current.records)+len(batch))
	for _, r := range o.current.records {
		seen[r.ID] = struct{}{}
	}
	for _, r := range batch {
		if _, dup := seen[r.ID]; dup {
			return o.current, fmt.Errorf("merging %s: %w: %q", source, ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	o.current = Merge(o.current, batch)
	o.logger.Info("merged import batch",
		zap.String("source", source),
		zap.Int("added", len(batch)),
		zap.Int("total", o.current.Len()),
		zap.Uint64("version", o.current.Version()),
	)
	return o.current, nil
}
