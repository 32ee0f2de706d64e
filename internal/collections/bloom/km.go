package bloom

import "github.com/guycipher/k4/murmur"

// Deterministic seeds for the two base hash functions. They must not change
// for the life of a filter.
const (
	kmSeed1 uint64 = 0x9e3779b97f4a7c15
	kmSeed2 uint64 = 0xc2b2ae3d27d4eb4f
)

// Hashers derives a family of hash values for one input.
type Hashers interface {
	Hash(v []byte) Hashes
}

// Hashes is the derived family; Get returns the i-th logical hash.
type Hashes interface {
	Get(i uint64) uint64
}

// KMHashers derives k logical hashes from two seeded murmur hashes using the
// Kirsch-Mitzenmacher construction, so each inserted or probed value costs
// two real hash computations regardless of k.
type KMHashers struct {
	seed1 uint64
	seed2 uint64
	m     uint64
}

// NewKMHashers creates hashers producing values modulo m.
func NewKMHashers(m uint64) KMHashers {
	return KMHashers{seed1: kmSeed1, seed2: kmSeed2, m: m}
}

// NewKMHashersWithSeeds creates hashers with caller-chosen base seeds.
func NewKMHashersWithSeeds(m, seed1, seed2 uint64) KMHashers {
	return KMHashers{seed1: seed1, seed2: seed2, m: m}
}

// Hash computes the two base hashes for v.
func (h KMHashers) Hash(v []byte) Hashes {
	return KMHashes{
		x1: murmur.Hash64(v, h.seed1) % h.m,
		x2: murmur.Hash64(v, h.seed2) % h.m,
		m:  h.m,
	}
}

// KMHashes holds the two base hashes; the i-th logical hash is
// (x1 + i*x2) mod m.
type KMHashes struct {
	x1 uint64
	x2 uint64
	m  uint64
}

// Get returns the i-th logical hash.
func (h KMHashes) Get(i uint64) uint64 {
	return (h.x1 + i*h.x2) % h.m
}
