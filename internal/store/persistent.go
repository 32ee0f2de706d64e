package store

import (
	"github.com/tansudb/tansu/internal/model"
	"github.com/tansudb/tansu/internal/store/sstable"
)

// TableID identifies one pooled SSTable. Ids are allocated from a
// monotonically increasing counter, so they double as a flush clock.
type TableID uint64

// PersistentStore is the read-only level: a pool of SSTables split into three
// id-keyed maps so data, index and filter can later be evicted independently.
// Today the invariant holds that a filter-pooled id has its index and data
// pooled too.
type PersistentStore struct {
	lastTableID TableID

	dataPool   map[TableID]*sstable.Data
	indexPool  map[TableID]*sstable.Index
	filterPool map[TableID]*sstable.Filter
}

// NewPersistentStore creates an empty pool.
func NewPersistentStore() *PersistentStore {
	return &PersistentStore{
		dataPool:   make(map[TableID]*sstable.Data),
		indexPool:  make(map[TableID]*sstable.Index),
		filterPool: make(map[TableID]*sstable.Filter),
	}
}

// Add pools a freshly built table under the next id. The id advances whether
// or not the table is cached, so ids stay a true clock; with cache false the
// table is discarded.
func (p *PersistentStore) Add(table *sstable.SSTable, cache bool) {
	p.lastTableID++
	if !cache {
		return
	}
	id := p.lastTableID
	p.dataPool[id] = table.Data
	p.indexPool[id] = table.Index
	p.filterPool[id] = table.Filter
}

// Len returns the number of pooled tables.
func (p *PersistentStore) Len() int {
	return len(p.filterPool)
}

// GetLatest scans every filter-hit table's index for row and returns the
// version with the greatest timestamp. Pool iteration order is unspecified;
// on equal timestamps the table visited last wins.
func (p *PersistentStore) GetLatest(row model.Row) (model.Key, model.Value, bool) {
	var bestID TableID
	var bestKey model.Key
	var bestOffset int
	found := false

	for id, filter := range p.filterPool {
		if !filter.Contains(row) {
			continue
		}
		index, ok := p.indexPool[id]
		if !ok {
			panic("store: index missing for pooled filter")
		}
		key, offset, ok := index.GetLatest(row)
		if !ok {
			continue
		}
		if !found || bestKey.Timestamp() <= key.Timestamp() {
			bestID, bestKey, bestOffset = id, key, offset
			found = true
		}
	}

	if !found {
		return model.Key{}, model.Value{}, false
	}
	data, ok := p.dataPool[bestID]
	if !ok {
		panic("store: data missing for pooled index")
	}
	key, value := data.Get(bestOffset)
	return key, value, true
}
