// internal/stream/loop.go
package stream

import (
	"context"
	"io"
	"net"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tamzrod/spll-reader/internal/sample"
)

// ReadBufferSize is the size of one receive.
const ReadBufferSize = 2048

// DefaultThrottle is the pause between receives.
const DefaultThrottle = 40 * time.Microsecond

var (
	// ErrStreamClosed is returned when the server closes the connection.
	ErrStreamClosed = errors.New("server closed the stream")
	// ErrIdleTimeout is returned when no data arrives within the idle timeout.
	ErrIdleTimeout = errors.New("stream idle timeout")
)

// Loop drives framer -> decoder -> writer against one connection.
// Single goroutine. No overlap. No retries.
type Loop struct {
	conn     Conn
	out      Writer
	mirror   Mirror
	observer Observer

	framer   Framer
	progress progress

	idleTimeout time.Duration
	throttle    time.Duration
}

// Option configures a Loop.
type Option func(*Loop)

// WithIdleTimeout ends the loop when the server is silent for d (0 = never).
func WithIdleTimeout(d time.Duration) Option {
	return func(l *Loop) { l.idleTimeout = d }
}

// WithThrottle sets the pause between receives.
func WithThrottle(d time.Duration) Option {
	return func(l *Loop) { l.throttle = d }
}

// WithProgress enables progress marks on w (nil disables).
func WithProgress(w io.Writer) Option {
	return func(l *Loop) { l.progress.w = w }
}

// WithMirror attaches a best-effort state mirror.
func WithMirror(m Mirror) Option {
	return func(l *Loop) { l.mirror = m }
}

// WithObserver attaches loop counters.
func WithObserver(o Observer) Option {
	return func(l *Loop) { l.observer = o }
}

// New creates a loop. The loop takes ownership of conn and out.
func New(conn Conn, out Writer, opts ...Option) (*Loop, error) {
	if conn == nil {
		return nil, errors.New("stream: connection required")
	}
	if out == nil {
		return nil, errors.New("stream: writer required")
	}

	l := &Loop{
		conn:     conn,
		out:      out,
		throttle: DefaultThrottle,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Run receives until the context is cancelled or the stream ends.
// Cancellation returns nil. Every other exit returns the cause.
// The writer, the mirror and the connection are closed before Run returns.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		err = l.release(err)
	}()

	// Interrupt a blocked receive on cancellation.
	stop := context.AfterFunc(ctx, func() {
		_ = l.conn.SetReadDeadline(time.Unix(1, 0))
	})
	defer stop()

	buf := make([]byte, ReadBufferSize)

	for {
		if ctx.Err() != nil {
			return nil
		}

		l.progress.tick()

		if l.idleTimeout > 0 {
			if err := l.conn.SetReadDeadline(time.Now().Add(l.idleTimeout)); err != nil {
				return errors.Wrap(err, "set read deadline")
			}
			// A cancellation racing the deadline above must still win.
			if ctx.Err() != nil {
				return nil
			}
		}

		n, rerr := l.conn.Read(buf)

		if n > 0 {
			if err := l.process(buf[:n]); err != nil {
				return err
			}
		}

		if rerr != nil {
			return l.endOfStream(ctx, rerr)
		}

		if l.throttle > 0 {
			time.Sleep(l.throttle)
		}
	}
}

// process frames, decodes and writes everything in one received chunk.
func (l *Loop) process(chunk []byte) error {
	if l.observer != nil {
		l.observer.ObserveRead(len(chunk))
	}

	records := l.framer.Feed(chunk)
	if glog.V(3) {
		glog.Infof("received %d bytes: %d records, %d pending", len(chunk), len(records), l.framer.Pending())
	}

	for _, rec := range records {
		s := sample.Decode(rec.Raw(), rec.Seq)

		if l.observer != nil {
			l.observer.ObserveSample(s)
		}
		if l.mirror != nil {
			l.mirror.Observe(s)
		}

		if err := l.out.Write(s); err != nil {
			return errors.Wrapf(err, "write sample %05d", s.Seq)
		}
	}

	if l.mirror != nil {
		l.mirror.Flush(time.Now())
	}
	return nil
}

// endOfStream classifies a receive error.
func (l *Loop) endOfStream(ctx context.Context, rerr error) error {
	if ctx.Err() != nil {
		return nil
	}

	if errors.Is(rerr, io.EOF) {
		if err := l.framer.Close(); err != nil {
			if l.observer != nil {
				l.observer.ObserveFramingError()
			}
			return err
		}
		return ErrStreamClosed
	}

	var ne net.Error
	if errors.As(rerr, &ne) && ne.Timeout() {
		return errors.Wrapf(ErrIdleTimeout, "no data for %s", l.idleTimeout)
	}

	return errors.Wrap(rerr, "receive")
}

// release closes everything the loop owns and keeps the first error.
func (l *Loop) release(runErr error) error {
	err := runErr

	if l.mirror != nil {
		if merr := l.mirror.Stop(); merr != nil {
			glog.Warningf("mirror stop: %v", merr)
		}
	}

	if cerr := l.out.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "close outputs")
	}
	if cerr := l.conn.Close(); cerr != nil && err == nil && !errors.Is(cerr, net.ErrClosed) {
		err = errors.Wrap(cerr, "close connection")
	}

	return err
}
