package model

import (
	"bytes"
	"encoding/binary"
)

// Value tag bytes.
const (
	tagVal uint8 = 0
	tagDel uint8 = 1
)

// Value is either a present payload or a tombstone. A tombstone is not
// erasure: it occupies a key slot and suppresses older versions on read.
type Value struct {
	payload   []byte
	tombstone bool
}

// NewValue copies b into an owned present value.
func NewValue(b []byte) Value {
	payload := make([]byte, len(b))
	copy(payload, b)
	return Value{payload: payload}
}

// Tombstone returns the deletion marker value.
func Tombstone() Value {
	return Value{tombstone: true}
}

// IsTombstone reports whether the value is a deletion marker.
func (v Value) IsTombstone() bool {
	return v.tombstone
}

// Payload returns the stored bytes; nil for a tombstone.
func (v Value) Payload() []byte {
	return v.payload
}

// Equal reports whether two values have the same shape and payload.
func (v Value) Equal(other Value) bool {
	if v.tombstone != other.tombstone {
		return false
	}
	return bytes.Equal(v.payload, other.payload)
}

// Size returns the exact serialized length in bytes.
func (v Value) Size() int {
	if v.tombstone {
		return 1
	}
	return 1 + 8 + len(v.payload)
}

// AppendTo serializes the value: a tag byte, then for present values the
// little-endian payload length and the payload.
func (v Value) AppendTo(buf []byte) []byte {
	if v.tombstone {
		return append(buf, tagDel)
	}
	buf = append(buf, tagVal)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(v.payload)))
	return append(buf, v.payload...)
}

// ReadValue decodes one value from the start of buf and returns it together
// with the number of bytes consumed. Any non-zero tag decodes as a tombstone.
// The payload aliases buf.
func ReadValue(buf []byte) (Value, int) {
	if buf[0] != tagVal {
		return Value{tombstone: true}, 1
	}
	n := int(binary.LittleEndian.Uint64(buf[1:]))
	return Value{payload: buf[9 : 9+n]}, 9 + n
}
