package store

import "github.com/tansudb/tansu/internal/model"

// Stat tracks the volatile level's running totals. It is the sole input for
// sizing the table builder on flush.
type Stat struct {
	len       int
	keySize   int
	valueSize int
}

// insert records one skip-list insert. For a fresh key all three counters
// grow; replacing an existing key only adjusts the value total.
func (s *Stat) insert(key model.Key, value model.Value, old model.Value, replaced bool) {
	if !replaced {
		s.len++
		s.keySize += key.Size()
		s.valueSize += value.Size()
		return
	}
	s.valueSize = s.valueSize + value.Size() - old.Size()
}

// Len returns the distinct-key count.
func (s Stat) Len() int {
	return s.len
}

// KeySize returns the total serialized key bytes.
func (s Stat) KeySize() int {
	return s.keySize
}

// ValueSize returns the total serialized value bytes.
func (s Stat) ValueSize() int {
	return s.valueSize
}
