package model

import "bytes"

// Row is the user-visible key: an opaque byte string ordered lexicographically.
type Row []byte

// NewRow copies b into an owned Row so callers may reuse their buffer.
func NewRow(b []byte) Row {
	row := make(Row, len(b))
	copy(row, b)
	return row
}

// Compare orders rows lexicographically.
func (r Row) Compare(other Row) int {
	return bytes.Compare(r, other)
}

// Equal reports whether two rows hold the same bytes.
func (r Row) Equal(other Row) bool {
	return bytes.Equal(r, other)
}

func (r Row) String() string {
	return string(r)
}
