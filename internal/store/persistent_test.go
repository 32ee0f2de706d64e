package store

import (
	"testing"

	"github.com/tansudb/tansu/internal/model"
)

func buildTable(t *testing.T, entries map[string]struct {
	timestamp uint64
	value     string
}) *VolatileStore {
	t.Helper()
	s := NewVolatileStore(2048, DefaultFilterFalsePositiveRate)
	for row, e := range entries {
		s.Insert(model.NewRow([]byte(row)), e.timestamp, model.NewValue([]byte(e.value)))
	}
	return s
}

func TestPersistentGetLatestAcrossTables(t *testing.T) {
	p := NewPersistentStore()

	type e = struct {
		timestamp uint64
		value     string
	}
	p.Add(buildTable(t, map[string]e{"a": {1, "a1"}, "b": {2, "b2"}}).Flush(), true)
	p.Add(buildTable(t, map[string]e{"b": {5, "b5"}, "c": {3, "c3"}}).Flush(), true)

	cases := []struct {
		row       string
		timestamp uint64
		value     string
	}{
		{"a", 1, "a1"},
		{"b", 5, "b5"},
		{"c", 3, "c3"},
	}
	for _, tc := range cases {
		key, value, ok := p.GetLatest(model.Row(tc.row))
		if !ok {
			t.Fatalf("GetLatest(%s) missed", tc.row)
		}
		if key.Timestamp() != tc.timestamp || string(value.Payload()) != tc.value {
			t.Errorf("GetLatest(%s) = (%d, %q), expected (%d, %q)",
				tc.row, key.Timestamp(), value.Payload(), tc.timestamp, tc.value)
		}
	}

	if _, _, ok := p.GetLatest(model.Row("d")); ok {
		t.Error("GetLatest for an unknown row should miss")
	}
}

func TestPersistentUncachedAddStillAdvancesID(t *testing.T) {
	p := NewPersistentStore()

	type e = struct {
		timestamp uint64
		value     string
	}
	p.Add(buildTable(t, map[string]e{"a": {1, "a1"}}).Flush(), false)
	if p.lastTableID != 1 {
		t.Errorf("lastTableID = %d after uncached add, expected 1", p.lastTableID)
	}
	if p.Len() != 0 {
		t.Errorf("Len = %d after uncached add, expected 0", p.Len())
	}

	p.Add(buildTable(t, map[string]e{"a": {2, "a2"}}).Flush(), true)
	if p.lastTableID != 2 {
		t.Errorf("lastTableID = %d, expected 2", p.lastTableID)
	}
	if p.Len() != 1 {
		t.Errorf("Len = %d, expected 1", p.Len())
	}
}

func TestPersistentTombstoneIsReturned(t *testing.T) {
	// The persistent level returns tombstones as-is; suppression happens in
	// the facade merge.
	p := NewPersistentStore()

	s := NewVolatileStore(2048, DefaultFilterFalsePositiveRate)
	s.Insert(model.NewRow([]byte("a")), 1, model.NewValue([]byte("a1")))
	s.Insert(model.NewRow([]byte("a")), 2, model.Tombstone())
	p.Add(s.Flush(), true)

	key, value, ok := p.GetLatest(model.Row("a"))
	if !ok {
		t.Fatal("GetLatest should surface the tombstone version")
	}
	if key.Timestamp() != 2 || !value.IsTombstone() {
		t.Errorf("GetLatest = (%d, tombstone=%v), expected (2, true)", key.Timestamp(), value.IsTombstone())
	}
}
