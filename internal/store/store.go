// Package store implements the two-level LSM storage core: a volatile
// skip-list level absorbing writes and a persistent pool of immutable
// SSTables, merged on read. The store assumes a single serialized caller;
// serialization lives in the layer that owns it.
package store

import "github.com/tansudb/tansu/internal/model"

// DefaultFilterFalsePositiveRate is the bloom target used when flushing.
const DefaultFilterFalsePositiveRate = 0.001

// Store is the engine facade over the volatile and persistent levels.
type Store struct {
	volatile   *VolatileStore
	persistent *PersistentStore
}

// New creates a store sized for n expected entries per flush, with the
// default bloom false-positive target.
func New(n int) *Store {
	return NewWithFalsePositiveRate(n, DefaultFilterFalsePositiveRate)
}

// NewWithFalsePositiveRate creates a store with an explicit bloom target.
func NewWithFalsePositiveRate(n int, p float64) *Store {
	return &Store{
		volatile:   NewVolatileStore(n, p),
		persistent: NewPersistentStore(),
	}
}

// Put writes a present value for row at timestamp.
func (s *Store) Put(row model.Row, timestamp uint64, payload []byte) {
	s.volatile.Insert(row, timestamp, model.NewValue(payload))
}

// Delete writes a tombstone for row at timestamp. The tombstone is a newer
// version, not erasure; it suppresses reads until an even newer put.
func (s *Store) Delete(row model.Row, timestamp uint64) {
	s.volatile.Insert(row, timestamp, model.Tombstone())
}

// GetLatest returns the newest version of row across both levels, with the
// payload bytes and the key carrying the effective timestamp. A tombstoned
// or absent row reads as not found. On equal timestamps the volatile level
// wins.
func (s *Store) GetLatest(row model.Row) (model.Key, []byte, bool) {
	vKey, vValue, vOK := s.volatile.GetLatest(row)
	pKey, pValue, pOK := s.persistent.GetLatest(row)

	var key model.Key
	var value model.Value
	switch {
	case vOK && pOK:
		if vKey.Timestamp() >= pKey.Timestamp() {
			key, value = vKey, vValue
		} else {
			key, value = pKey, pValue
		}
	case vOK:
		key, value = vKey, vValue
	case pOK:
		key, value = pKey, pValue
	default:
		return model.Key{}, nil, false
	}

	if value.IsTombstone() {
		return model.Key{}, nil, false
	}
	return key, value.Payload(), true
}

// Flush moves the volatile contents into a new SSTable in the persistent
// pool (discarded when cache is false) and resets the volatile level. With
// nothing written since the last flush it is a no-op.
func (s *Store) Flush(cache bool) {
	if s.volatile.Len() == 0 {
		return
	}
	table := s.volatile.Flush()
	s.persistent.Add(table, cache)
	s.volatile.Clear()
}

// VolatileStat exposes the volatile level's running statistics.
func (s *Store) VolatileStat() Stat {
	return s.volatile.Stat()
}

// Tables returns the number of pooled SSTables.
func (s *Store) Tables() int {
	return s.persistent.Len()
}
