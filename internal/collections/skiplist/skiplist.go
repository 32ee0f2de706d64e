// Package skiplist provides an ordered map backed by a probabilistic skip
// list. Nodes live in an append-only arena and reference each other by
// 1-based ids, so the structure carries no pointer graph and absent edges
// share storage with zero.
package skiplist

import "math/rand"

// LevelGenerator assigns a level to each inserted node.
type LevelGenerator interface {
	Generate() int
}

// RandomLevelGenerator draws geometric levels: level = 1 + the number of
// consecutive successes at probability p, clamped to maxLevel.
type RandomLevelGenerator struct {
	maxLevel int
	p        float64
	rng      *rand.Rand
}

// NewRandomLevelGenerator creates a generator with success probability p.
func NewRandomLevelGenerator(maxLevel int, p float64) *RandomLevelGenerator {
	return &RandomLevelGenerator{
		maxLevel: maxLevel,
		p:        p,
		rng:      rand.New(rand.NewSource(rand.Int63())),
	}
}

// Generate returns the level for the next node.
func (g *RandomLevelGenerator) Generate() int {
	level := 1
	for g.rng.Float64() < g.p && level < g.maxLevel {
		level++
	}
	return level
}

// nodeID addresses a node in the arena. Ids are 1-based; 0 means "none"
// (an absent edge, or the head as a predecessor).
type nodeID int

type node[K, V any] struct {
	key      K
	value    V
	forwards []nodeID
}

// Map is an ordered map with insert, point get, smallest-at-least lookup and
// in-order iteration. The arena grows monotonically; there is no removal.
type Map[K, V any] struct {
	cmp       func(K, K) int
	generator LevelGenerator
	forwards  []nodeID
	nodes     []node[K, V]
}

// New creates a map ordered by cmp, using the default level generator with
// p = 0.5.
func New[K, V any](maxLevel int, cmp func(K, K) int) *Map[K, V] {
	return NewWithGenerator[K, V](maxLevel, cmp, NewRandomLevelGenerator(maxLevel, 0.5))
}

// NewWithGenerator creates a map with a caller-supplied level generator.
func NewWithGenerator[K, V any](maxLevel int, cmp func(K, K) int, generator LevelGenerator) *Map[K, V] {
	return &Map[K, V]{
		cmp:       cmp,
		generator: generator,
		forwards:  make([]nodeID, 0, maxLevel),
	}
}

// Level returns the current height of the list.
func (m *Map[K, V]) Level() int {
	return len(m.forwards)
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.nodes)
}

func (m *Map[K, V]) node(id nodeID) *node[K, V] {
	return &m.nodes[id-1]
}

func (m *Map[K, V]) register(n node[K, V]) nodeID {
	m.nodes = append(m.nodes, n)
	return nodeID(len(m.nodes))
}

// next returns the level-0 successor of id; id 0 means the head.
func (m *Map[K, V]) next(id nodeID) nodeID {
	if id == 0 {
		return m.forwards[0]
	}
	return m.node(id).forwards[0]
}

// searchTrace walks levels top-down, advancing while the next node's key is
// strictly less than key. trace[l] is the predecessor at level l (0 = head).
func (m *Map[K, V]) searchTrace(key K) []nodeID {
	trace := make([]nodeID, m.Level())
	var id nodeID
	for level := m.Level() - 1; level >= 0; level-- {
		if id == 0 {
			head := m.forwards[level]
			if m.cmp(m.node(head).key, key) < 0 {
				id = head
			}
		}
		if id != 0 {
			n := m.node(id)
			for n.forwards[level] != 0 && m.cmp(m.node(n.forwards[level]).key, key) < 0 {
				id = n.forwards[level]
				n = m.node(id)
			}
		}
		trace[level] = id
	}
	return trace
}

func (m *Map[K, V]) smallestID(key K) nodeID {
	trace := m.searchTrace(key)
	if len(trace) == 0 {
		return 0
	}
	return m.next(trace[0])
}

// GetSmallest returns the entry with the smallest key >= key.
func (m *Map[K, V]) GetSmallest(key K) (K, V, bool) {
	if id := m.smallestID(key); id != 0 {
		n := m.node(id)
		return n.key, n.value, true
	}
	var zeroK K
	var zeroV V
	return zeroK, zeroV, false
}

// Get returns the value stored under exactly key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if id := m.smallestID(key); id != 0 {
		n := m.node(id)
		if m.cmp(n.key, key) == 0 {
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// Insert stores value under key. If the key was already present its value is
// replaced in place and the old value is returned with replaced = true.
func (m *Map[K, V]) Insert(key K, value V) (old V, replaced bool) {
	trace := m.searchTrace(key)

	if len(trace) > 0 {
		if id := m.next(trace[0]); id != 0 {
			n := m.node(id)
			if m.cmp(n.key, key) == 0 {
				old, n.value = n.value, value
				return old, true
			}
		}
	}

	newLevel := m.generator.Generate()
	id := m.register(node[K, V]{key: key, value: value, forwards: make([]nodeID, newLevel)})

	splice := newLevel
	if newLevel > len(trace) {
		// The extra levels have no predecessor to splice behind; the head
		// forwards grow to point at the new node directly.
		for level := len(trace); level < newLevel; level++ {
			m.forwards = append(m.forwards, id)
		}
		splice = len(trace)
	}
	for level := 0; level < splice; level++ {
		pred := trace[level]
		if pred != 0 {
			n := m.node(pred)
			m.node(id).forwards[level] = n.forwards[level]
			n.forwards[level] = id
		} else {
			m.node(id).forwards[level] = m.forwards[level]
			m.forwards[level] = id
		}
	}

	var zero V
	return zero, false
}

// Iterator yields entries in ascending key order.
type Iterator[K, V any] struct {
	m  *Map[K, V]
	id nodeID
}

// Iter returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iter() *Iterator[K, V] {
	var id nodeID
	if len(m.forwards) > 0 {
		id = m.forwards[0]
	}
	return &Iterator[K, V]{m: m, id: id}
}

// Next returns the next entry, or ok = false when the list is exhausted.
func (it *Iterator[K, V]) Next() (key K, value V, ok bool) {
	if it.id == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	n := it.m.node(it.id)
	it.id = n.forwards[0]
	return n.key, n.value, true
}
