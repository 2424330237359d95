// internal/stream/types.go
package stream

import (
	"io"
	"time"

	"github.com/tamzrod/spll-reader/internal/sample"
)

// Conn is the transport the loop reads from. *net.TCPConn satisfies it.
// The read deadline is how cancellation and the idle timeout interrupt a
// blocking receive.
type Conn interface {
	io.ReadCloser
	SetReadDeadline(t time.Time) error
}

// Writer receives every decoded sample, in stream order.
// A Write error is fatal to the loop.
type Writer interface {
	Write(s sample.Sample) error
	Close() error
}

// Mirror is an auxiliary, best-effort view of the stream state.
// Observe must not block on I/O; Flush may.
type Mirror interface {
	Observe(s sample.Sample)
	Flush(now time.Time)
	Stop() error
}

// Observer receives loop counters (metrics).
type Observer interface {
	ObserveRead(n int)
	ObserveSample(s sample.Sample)
	ObserveFramingError()
}
