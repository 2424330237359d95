// internal/stream/framer_test.go
package stream

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Raw(t *testing.T) {
	r := Record{ValueLow: 0x0005, ValueHigh: 0x4200, Seq: 7}
	assert.Equal(t, uint32(0x42000005), r.Raw())
}

func TestFramer_WholeRecord(t *testing.T) {
	var f Framer

	recs := f.Feed(EncodeRecord(0x42000005, 7))
	require.Len(t, recs, 1)
	assert.Equal(t, uint32(0x42000005), recs[0].Raw())
	assert.Equal(t, uint16(7), recs[0].Seq)
	assert.Equal(t, 0, f.Pending())
	assert.NoError(t, f.Close())
}

func TestFramer_LittleEndianWords(t *testing.T) {
	var f Framer

	recs := f.Feed([]byte{0x05, 0x00, 0x00, 0x42, 0x07, 0x00, 0xAA, 0xBB})
	require.Len(t, recs, 1)
	assert.Equal(t, uint16(0x0005), recs[0].ValueLow)
	assert.Equal(t, uint16(0x4200), recs[0].ValueHigh)
	assert.Equal(t, uint16(7), recs[0].Seq)
	assert.Equal(t, uint16(0xBBAA), recs[0].Reserved)
}

func TestFramer_SplitAcrossChunks(t *testing.T) {
	full := EncodeRecord(0x80123456, 65535)

	var whole Framer
	want := whole.Feed(full)
	require.Len(t, want, 1)

	for cut := 1; cut < RecordSize; cut++ {
		var f Framer

		first := f.Feed(full[:cut])
		assert.Empty(t, first, "cut=%d", cut)
		assert.Equal(t, cut, f.Pending())

		second := f.Feed(full[cut:])
		require.Len(t, second, 1, "cut=%d", cut)
		assert.Equal(t, want[0], second[0], "cut=%d", cut)
		assert.Equal(t, 0, f.Pending())
	}
}

func TestFramer_ByteAtATime(t *testing.T) {
	var stream bytes.Buffer
	for i := 0; i < 5; i++ {
		stream.Write(EncodeRecord(uint32(i)<<24|uint32(i), uint16(i)))
	}

	var f Framer
	var got []Record
	for _, b := range stream.Bytes() {
		got = append(got, f.Feed([]byte{b})...)
	}

	require.Len(t, got, 5)
	for i, r := range got {
		assert.Equal(t, uint16(i), r.Seq)
		assert.Equal(t, uint32(i)<<24|uint32(i), r.Raw())
	}
}

func TestFramer_ManyRecordsPlusTail(t *testing.T) {
	var chunk []byte
	for i := 0; i < 3; i++ {
		chunk = append(chunk, EncodeRecord(uint32(i), uint16(100+i))...)
	}
	next := EncodeRecord(0xDEAD, 200)
	chunk = append(chunk, next[:3]...)

	var f Framer
	recs := f.Feed(chunk)
	require.Len(t, recs, 3)
	assert.Equal(t, 3, f.Pending())

	recs = f.Feed(next[3:])
	require.Len(t, recs, 1)
	assert.Equal(t, uint16(200), recs[0].Seq)
}

func TestFramer_CloseWithPartial(t *testing.T) {
	var f Framer
	f.Feed([]byte{1, 2, 3})

	err := f.Close()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedRecord))
	assert.Equal(t, 0, f.Pending())
}

func TestFramer_DoesNotRetainChunk(t *testing.T) {
	var f Framer
	chunk := EncodeRecord(0x01020304, 1)[:5]
	f.Feed(chunk)

	// Mutating the caller's chunk must not change buffered bytes.
	for i := range chunk {
		chunk[i] = 0xFF
	}

	rest := EncodeRecord(0x01020304, 1)[5:]
	recs := f.Feed(rest)
	require.Len(t, recs, 1)
	assert.Equal(t, uint32(0x01020304), recs[0].Raw())
}
