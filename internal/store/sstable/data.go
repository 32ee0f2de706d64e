package sstable

import "github.com/tansudb/tansu/internal/model"

// Data holds the serialized entry stream of one table. Entries are addressed
// by the byte offset recorded in the index.
type Data struct {
	data []byte
}

// Get decodes the entry starting at offset: one key, then one value. The
// returned row and payload alias the table buffer.
func (d *Data) Get(offset int) (model.Key, model.Value) {
	buf := d.data[offset:]
	key, n := model.ReadKey(buf)
	value, _ := model.ReadValue(buf[n:])
	return key, value
}

// Len returns the stream length in bytes.
func (d *Data) Len() int {
	return len(d.data)
}

// dataBuilder accumulates serialized entries into a pre-sized buffer.
type dataBuilder struct {
	data []byte
}

func newDataBuilder(size int) *dataBuilder {
	return &dataBuilder{data: make([]byte, 0, size)}
}

// append serializes one entry and returns the number of bytes written.
func (b *dataBuilder) append(key model.Key, value model.Value) int {
	before := len(b.data)
	b.data = key.AppendTo(b.data)
	b.data = value.AppendTo(b.data)
	return len(b.data) - before
}

func (b *dataBuilder) build() *Data {
	return &Data{data: b.data}
}
