// Package bloom provides a bloom filter for approximate set membership.
// Membership answers have no false negatives; the false positive rate is
// approximately (1 - e^(-kn/m))^k.
package bloom

import "math"

// Filter is an m-bit vector probed by k hash functions.
type Filter struct {
	k       int
	m       uint64
	bits    []uint64
	hashers Hashers
}

// New creates a filter sized for n expected items over m bits, with the
// default murmur-based K-M hashers. k = floor(m/n * ln 2).
func New(n, m uint64) *Filter {
	return NewWithHashers(n, m, NewKMHashers(m))
}

// NewWithHashers creates a filter with a caller-supplied hash family. The
// hashers must be deterministic for the life of the filter.
func NewWithHashers(n, m uint64, hashers Hashers) *Filter {
	k := int(float64(m) / float64(n) * math.Ln2)
	return &Filter{
		k:       k,
		m:       m,
		bits:    make([]uint64, (m+63)/64),
		hashers: hashers,
	}
}

// K returns the number of hash functions.
func (f *Filter) K() int {
	return f.k
}

// Bits returns the size of the bit vector.
func (f *Filter) Bits() uint64 {
	return f.m
}

// Insert sets the k bits for v. The filter never removes.
func (f *Filter) Insert(v []byte) {
	hashes := f.hashers.Hash(v)
	for i := 0; i < f.k; i++ {
		h := hashes.Get(uint64(i))
		f.bits[h/64] |= 1 << (h % 64)
	}
}

// Contains reports whether all k bits for v are set. A true answer may be a
// false positive; a false answer is always correct.
func (f *Filter) Contains(v []byte) bool {
	hashes := f.hashers.Hash(v)
	for i := 0; i < f.k; i++ {
		h := hashes.Get(uint64(i))
		if f.bits[h/64]&(1<<(h%64)) == 0 {
			return false
		}
	}
	return true
}
