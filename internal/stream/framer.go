// internal/stream/framer.go
package stream

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// RecordSize is the wire size of one debug record.
//
// Layout (little-endian 16-bit words):
//
//	0–1  value_low
//	2–3  value_high
//	4–5  sequence_id
//	6–7  reserved
const RecordSize = 8

// ErrTruncatedRecord is returned when the stream ends mid-record.
var ErrTruncatedRecord = errors.New("stream ended inside a record")

// Record is one raw debug record. Geometry only: no semantics.
type Record struct {
	ValueLow  uint16
	ValueHigh uint16
	Seq       uint16
	Reserved  uint16
}

// Raw returns the 32-bit register word carried by the record.
func (r Record) Raw() uint32 {
	return uint32(r.ValueHigh)<<16 | uint32(r.ValueLow)
}

// Framer reassembles fixed-size records from arbitrarily fragmented reads.
// A trailing partial record is carried over to the next Feed.
type Framer struct {
	buf []byte
}

// Feed appends chunk to the carry-over buffer and returns every complete
// record now available. chunk is not retained.
func (f *Framer) Feed(chunk []byte) []Record {
	f.buf = append(f.buf, chunk...)

	n := len(f.buf) / RecordSize
	if n == 0 {
		return nil
	}

	out := make([]Record, n)
	for i := 0; i < n; i++ {
		out[i] = decodeRecord(f.buf[i*RecordSize : (i+1)*RecordSize])
	}

	// Keep only the partial tail; compact in place.
	rest := copy(f.buf, f.buf[n*RecordSize:])
	f.buf = f.buf[:rest]

	return out
}

// Pending returns the number of buffered bytes of an incomplete record.
func (f *Framer) Pending() int {
	return len(f.buf)
}

// Close reports a framing error if a partial record is still buffered.
func (f *Framer) Close() error {
	if len(f.buf) == 0 {
		return nil
	}
	n := len(f.buf)
	f.buf = f.buf[:0]
	return errors.Wrapf(ErrTruncatedRecord, "%d of %d bytes buffered", n, RecordSize)
}

func decodeRecord(b []byte) Record {
	return Record{
		ValueLow:  binary.LittleEndian.Uint16(b[0:2]),
		ValueHigh: binary.LittleEndian.Uint16(b[2:4]),
		Seq:       binary.LittleEndian.Uint16(b[4:6]),
		Reserved:  binary.LittleEndian.Uint16(b[6:8]),
	}
}

// EncodeRecord is the inverse of the framer for one record.
func EncodeRecord(raw uint32, seq uint16) []byte {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint16(b[0:2], uint16(raw))
	binary.LittleEndian.PutUint16(b[2:4], uint16(raw>>16))
	binary.LittleEndian.PutUint16(b[4:6], seq)
	return b
}
