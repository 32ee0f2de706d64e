// Package engine exposes the storage core as the four row-level operations
// the service serves: put, get, delete and flush. The core below assumes a
// single serialized caller, so the engine is the unit of mutual exclusion.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tansudb/tansu/internal/model"
	"github.com/tansudb/tansu/internal/store"
)

// ErrNotFound is returned when a row is absent or its newest version is a
// tombstone.
var ErrNotFound = errors.New("not found")

// DefaultExpectedEntries sizes the volatile level when no configuration is
// given.
const DefaultExpectedEntries = 2048

// Engine owns the store and serializes all operations on it.
type Engine struct {
	mu    sync.Mutex
	store *store.Store
	now   func() time.Time
}

// Stats is a point-in-time snapshot of the engine.
type Stats struct {
	VolatileEntries    int `json:"volatile_entries"`
	VolatileKeyBytes   int `json:"volatile_key_bytes"`
	VolatileValueBytes int `json:"volatile_value_bytes"`
	Tables             int `json:"tables"`
}

// New creates an engine sized for n expected entries per flush.
func New(n int) *Engine {
	return NewWithFalsePositiveRate(n, store.DefaultFilterFalsePositiveRate)
}

// NewWithFalsePositiveRate creates an engine with an explicit bloom target
// for flushed tables.
func NewWithFalsePositiveRate(n int, p float64) *Engine {
	return &Engine{
		store: store.NewWithFalsePositiveRate(n, p),
		now:   time.Now,
	}
}

// Put stores value under row. A zero timestamp means the server assigns the
// current wall-clock milliseconds.
func (e *Engine) Put(row []byte, timestamp uint64, value []byte) error {
	timestamp, err := e.resolveTimestamp(timestamp)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Put(model.NewRow(row), timestamp, value)
	return nil
}

// Get returns the effective timestamp and payload of the newest version of
// row, or ErrNotFound if the row is absent or tombstoned.
func (e *Engine) Get(row []byte) (uint64, []byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	key, value, ok := e.store.GetLatest(model.Row(row))
	if !ok {
		return 0, nil, ErrNotFound
	}
	return key.Timestamp(), value, nil
}

// Delete writes a tombstone for row. A zero timestamp means the server
// assigns the current wall-clock milliseconds.
func (e *Engine) Delete(row []byte, timestamp uint64) error {
	timestamp, err := e.resolveTimestamp(timestamp)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Delete(model.NewRow(row), timestamp)
	return nil
}

// Flush moves the volatile level into the persistent pool; with cache false
// the built table is discarded. Flushing an empty volatile level is a no-op.
func (e *Engine) Flush(cache bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Flush(cache)
}

// Stats returns a snapshot of both levels.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	stat := e.store.VolatileStat()
	return Stats{
		VolatileEntries:    stat.Len(),
		VolatileKeyBytes:   stat.KeySize(),
		VolatileValueBytes: stat.ValueSize(),
		Tables:             e.store.Tables(),
	}
}

// resolveTimestamp substitutes the current wall clock for a zero timestamp.
// The operation fails without mutating state if the clock is unusable.
func (e *Engine) resolveTimestamp(timestamp uint64) (uint64, error) {
	if timestamp != 0 {
		return timestamp, nil
	}
	millis := e.now().UnixMilli()
	if millis < 0 {
		return 0, fmt.Errorf("failed to get current time: clock before epoch")
	}
	return uint64(millis), nil
}
