package store

import (
	"math"
	"math/bits"

	"github.com/tansudb/tansu/internal/collections/skiplist"
	"github.com/tansudb/tansu/internal/model"
	"github.com/tansudb/tansu/internal/store/sstable"
)

func log2(x int) int {
	return bits.Len(uint(x)) - 1
}

// VolatileStore is the writable in-memory level: a skip-list map from Key to
// Value holding every version written since the last flush, plus the running
// Stat that sizes the flush.
type VolatileStore struct {
	level             int
	falsePositiveRate float64
	m                 *skiplist.Map[model.Key, model.Value]
	stat              Stat
}

// NewVolatileStore sizes the skip list for n expected entries.
func NewVolatileStore(n int, falsePositiveRate float64) *VolatileStore {
	level := log2(n) + 1
	return &VolatileStore{
		level:             level,
		falsePositiveRate: falsePositiveRate,
		m:                 skiplist.New[model.Key, model.Value](level, model.Key.Compare),
	}
}

// Insert stores value under (row, timestamp), replacing in place if that
// exact version already exists.
func (s *VolatileStore) Insert(row model.Row, timestamp uint64, value model.Value) {
	key := model.NewKey(row, timestamp)
	old, replaced := s.m.Insert(key, value)
	s.stat.insert(key, value, old, replaced)
}

// GetLatest returns the newest version of row. Descending timestamps make it
// the smallest key >= (row, max timestamp).
func (s *VolatileStore) GetLatest(row model.Row) (model.Key, model.Value, bool) {
	probe := model.NewKey(row, math.MaxUint64)
	key, value, ok := s.m.GetSmallest(probe)
	if ok && key.Row().Equal(row) {
		return key, value, true
	}
	return model.Key{}, model.Value{}, false
}

// Len returns the number of distinct keys held.
func (s *VolatileStore) Len() int {
	return s.stat.Len()
}

// Stat returns the running statistics.
func (s *VolatileStore) Stat() Stat {
	return s.stat
}

// Flush builds an SSTable from the ordered contents. The store must not be
// empty; callers guard with Len.
func (s *VolatileStore) Flush() *sstable.SSTable {
	builder := sstable.NewBuilder(s.stat.Len(), s.stat.KeySize()+s.stat.ValueSize(), s.falsePositiveRate)
	return builder.Load(s.m.Iter())
}

// Clear drops the map and zeroes the statistics.
func (s *VolatileStore) Clear() {
	s.m = skiplist.New[model.Key, model.Value](s.level, model.Key.Compare)
	s.stat = Stat{}
}
