// internal/writer/status_writer.go
package writer

import (
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/tamzrod/spll-reader/internal/sample"
	"github.com/tamzrod/spll-reader/internal/status"
)

// registerClient is the exact contract the mirror uses.
type registerClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// MirrorPlan locates the status block in the target's holding registers.
type MirrorPlan struct {
	UnitID      uint8
	BaseAddress uint16

	// Interval is the minimum time between two flushes. 0 flushes every chunk.
	Interval time.Duration
}

// StatusMirror keeps a live status block of the stream in a Modbus server.
// It implements stream.Mirror. Delivery is best-effort.
type StatusMirror struct {
	plan   MirrorPlan
	cli    registerClient
	closer func() error

	cur  status.Snapshot
	last status.Snapshot

	needFull  bool
	lastFlush time.Time
}

// NewStatusMirror builds a mirror. closer may be nil.
func NewStatusMirror(plan MirrorPlan, cli registerClient, closer func() error) *StatusMirror {
	return &StatusMirror{
		plan:     plan,
		cli:      cli,
		closer:   closer,
		needFull: true, // full re-assert on first successful write
		cur: status.Snapshot{
			Health: status.HealthUnknown,
		},
	}
}

// Observe folds one sample into the current snapshot. No IO.
func (m *StatusMirror) Observe(s sample.Sample) {
	m.cur.Health = status.HealthStreaming
	m.cur.LastSeq = s.Seq
	m.cur.LastSource = uint16(s.SourceCode)

	// Counters wrap at 16 bits, like the registers that carry them.
	m.cur.Samples++
	if s.Boundary {
		m.cur.Boundaries++
	}
	if s.Kind == sample.KindUnknown || s.Source == sample.SourceUnknown {
		m.cur.Unknown++
	}

	if s.Kind != sample.KindUnknown {
		m.cur.Values[s.Kind] = s.Signed()
	}
}

// Flush delivers the snapshot if it changed and the interval has elapsed.
// Failures are logged; the next flush re-asserts the full block.
func (m *StatusMirror) Flush(now time.Time) {
	if !m.lastFlush.IsZero() && now.Sub(m.lastFlush) < m.plan.Interval {
		return
	}
	if !m.needFull && m.cur == m.last {
		return
	}

	m.lastFlush = now
	if err := m.write(m.cur); err != nil {
		glog.Warningf("status mirror: %v", err)
	}
}

// Stop marks the stream stopped, delivers the final block and releases the client.
func (m *StatusMirror) Stop() error {
	m.cur.Health = status.HealthStopped

	err := m.write(m.cur)

	if m.closer != nil {
		if cerr := m.closer(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "status mirror: close")
		}
	}
	return err
}

// write delivers s: the full block after a failure (or first time),
// otherwise only the span of registers that changed.
func (m *StatusMirror) write(s status.Snapshot) error {
	if m.cli == nil {
		return errors.New("status mirror: missing client")
	}

	regs := status.Encode(s)

	// ------------------------------------------------------------
	// Full block write (re-assert)
	// ------------------------------------------------------------
	if m.needFull {
		if err := m.cli.WriteRegisters(m.plan.UnitID, m.plan.BaseAddress, regs); err != nil {
			m.needFull = true
			return errors.Wrap(err, "full block write failed")
		}
		m.needFull = false
		m.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Changed span only
	// ------------------------------------------------------------
	first, end := changedSpan(status.Encode(m.last), regs)
	if first == end {
		return nil
	}

	if err := m.cli.WriteRegisters(m.plan.UnitID, m.plan.BaseAddress+uint16(first), regs[first:end]); err != nil {
		// A partial failure introduces doubt: re-assert on next success.
		m.needFull = true
		return errors.Wrapf(err, "slots %d..%d write failed", first, end-1)
	}

	m.last = s
	return nil
}

// changedSpan returns the half-open range [first, end) covering every
// register that differs. first == end means no change.
func changedSpan(prev, next []uint16) (first, end int) {
	first = -1
	for i := range next {
		if prev[i] != next[i] {
			if first < 0 {
				first = i
			}
			end = i + 1
		}
	}
	if first < 0 {
		return 0, 0
	}
	return first, end
}
