// Package sstable implements the immutable sorted table of the persistent
// level: a serialized data buffer, a sparse index of (key, offset) pairs and
// a bloom filter over rows, all built from one ordered entry stream.
package sstable

import (
	"math"

	"github.com/tansudb/tansu/internal/collections/bloom"
	"github.com/tansudb/tansu/internal/model"
)

// SSTable is one immutable table: data, index and filter are co-owned
// artifacts built from the same entries.
type SSTable struct {
	Data   *Data
	Index  *Index
	Filter *Filter
}

// EntryIterator yields (key, value) entries in ascending key order.
type EntryIterator interface {
	Next() (model.Key, model.Value, bool)
}

// Builder assembles a table from a key-ordered entry stream, compacting to
// one entry per row as it goes.
type Builder struct {
	maxLen int
	len    int
	offset int
	data   *dataBuilder
	index  []indexEntry
	filter *bloom.Filter
}

// NewBuilder sizes a builder from the volatile level's statistics:
// itemCount entries at most, dataSize serialized bytes, and a bloom filter
// targeting false-positive rate p.
func NewBuilder(itemCount, dataSize int, p float64) *Builder {
	if itemCount <= 0 {
		panic("sstable: builder requires at least one entry")
	}
	m := computeFilterBits(itemCount, p)
	return &Builder{
		maxLen: itemCount,
		data:   newDataBuilder(dataSize),
		index:  make([]indexEntry, 0, itemCount),
		filter: bloom.New(uint64(itemCount), uint64(m)),
	}
}

// Load drains the iterator through a single-version compacter and builds the
// table. The iterator must yield at least one entry.
func (b *Builder) Load(it EntryIterator) *SSTable {
	key, value, ok := it.Next()
	if !ok {
		panic("sstable: building from an empty iterator")
	}
	compacter := NewSingleVersionCompacter(key, value)
	for {
		key, value, ok := it.Next()
		if !ok {
			break
		}
		if k, v, emit := compacter.Compact(key, value); emit {
			b.append(k, v)
		}
	}
	b.append(compacter.Final())

	return &SSTable{
		Data:   b.data.build(),
		Index:  newIndex(b.index),
		Filter: &Filter{filter: b.filter},
	}
}

func (b *Builder) append(key model.Key, value model.Value) {
	if b.len >= b.maxLen {
		panic("sstable: builder fed more entries than sized for")
	}
	b.filter.Insert(key.Row())
	size := b.data.append(key, value)
	b.index = append(b.index, indexEntry{key: key, offset: b.offset})
	b.len++
	b.offset += size
}

// computeFilterBits returns the bloom bit count for n items at target
// false-positive rate p.
// https://hur.st/bloomfilter: m = ceil(n * ln p / ln(1 / 2^ln 2))
func computeFilterBits(n int, p float64) int {
	return int(math.Ceil(float64(n) * math.Log(p) / math.Log(1.0/math.Pow(2, math.Ln2))))
}
