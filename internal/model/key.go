package model

import "encoding/binary"

// Key identifies one version of a row. Keys order ascending by row and
// descending by timestamp, so the newest version of a row sorts first.
type Key struct {
	row       Row
	timestamp uint64
}

// NewKey builds a Key from an already-owned row.
func NewKey(row Row, timestamp uint64) Key {
	return Key{row: row, timestamp: timestamp}
}

// Row returns the row component.
func (k Key) Row() Row {
	return k.row
}

// Timestamp returns the version timestamp in milliseconds.
func (k Key) Timestamp() uint64 {
	return k.timestamp
}

// Compare implements the engine's key order: lexicographic on row, then
// reversed on timestamp.
func (k Key) Compare(other Key) int {
	if c := k.row.Compare(other.row); c != 0 {
		return c
	}
	switch {
	case k.timestamp > other.timestamp:
		return -1
	case k.timestamp < other.timestamp:
		return 1
	default:
		return 0
	}
}

// Size returns the exact serialized length in bytes.
func (k Key) Size() int {
	return 8 + 8 + len(k.row)
}

// AppendTo serializes the key as timestamp, row length, row bytes
// (all little-endian) and returns the extended buffer.
func (k Key) AppendTo(buf []byte) []byte {
	buf = binary.LittleEndian.AppendUint64(buf, k.timestamp)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(k.row)))
	return append(buf, k.row...)
}

// ReadKey decodes one key from the start of buf and returns it together with
// the number of bytes consumed. The row aliases buf; it stays valid for as
// long as the underlying table data does.
func ReadKey(buf []byte) (Key, int) {
	timestamp := binary.LittleEndian.Uint64(buf)
	n := int(binary.LittleEndian.Uint64(buf[8:]))
	row := Row(buf[16 : 16+n])
	return Key{row: row, timestamp: timestamp}, 16 + n
}
