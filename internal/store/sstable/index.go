package sstable

import (
	"math"

	"github.com/tansudb/tansu/internal/model"
)

type indexEntry struct {
	key    model.Key
	offset int
}

// Index maps keys to byte offsets in the table data. Entries are sorted by
// key; because tables are compacted on build, rows are strictly increasing
// and at most one entry exists per row.
type Index struct {
	entries []indexEntry
}

func newIndex(entries []indexEntry) *Index {
	if len(entries) == 0 {
		panic("sstable: index must not be empty")
	}
	return &Index{entries: entries}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// GetLatest finds the entry for row, which holds the row's newest version.
// It binary-searches for the first key >= (row, max timestamp); if that
// entry's row matches exactly it is the answer.
func (ix *Index) GetLatest(row model.Row) (model.Key, int, bool) {
	key := model.NewKey(row, math.MaxUint64)

	// Half-open search over (left, right]; left starts at the all-ones
	// sentinel so the wrapping midpoint needs no first-iteration guard.
	// Invariant: entries[left].key < key <= entries[right].key.
	left := ^uint(0)
	right := uint(len(ix.entries))

	for right-left > 1 {
		m := left + (right-left)/2
		if key.Compare(ix.entries[m].key) <= 0 {
			right = m
		} else {
			left = m
		}
	}

	if right < uint(len(ix.entries)) {
		entry := ix.entries[right]
		if entry.key.Row().Equal(row) {
			return entry.key, entry.offset, true
		}
	}
	return model.Key{}, 0, false
}
