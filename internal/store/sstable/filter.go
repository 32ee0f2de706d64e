package sstable

import (
	"github.com/tansudb/tansu/internal/collections/bloom"
	"github.com/tansudb/tansu/internal/model"
)

// Filter answers approximate row-membership for one table. A miss is
// definitive; a hit may be a false positive.
type Filter struct {
	filter *bloom.Filter
}

// Contains reports whether the table may hold a version of row.
func (f *Filter) Contains(row model.Row) bool {
	return f.filter.Contains(row)
}
