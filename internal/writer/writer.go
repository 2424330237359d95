// internal/writer/writer.go
package writer

import (
	"github.com/pkg/errors"

	"github.com/tamzrod/spll-reader/internal/sample"
)

// Router renders each sample and dispatches it to the sinks of a Plan.
// It implements stream.Writer.
type Router struct {
	plan   Plan
	closed bool
}

func New(plan Plan) *Router {
	return &Router{plan: plan}
}

// Write renders s into every destination it belongs to.
// Any sink failure is returned; the caller treats it as fatal.
func (r *Router) Write(s sample.Sample) error {
	if r.closed {
		return errors.New("writer: closed")
	}

	// ------------------------------------------------------------
	// PRIMARY
	// ------------------------------------------------------------

	if r.plan.CSVDemux {
		if s.Kind != sample.KindUnknown {
			ch := r.plan.Channels[s.Kind]
			if ch == nil {
				ch = r.plan.Console
			}
			if err := ch.WriteLine(sample.CSVRow(s)); err != nil {
				return err
			}
		} else if !r.plan.Echo {
			// No channel owns an unknown kind. Keep it visible.
			if err := r.plan.Console.WriteLine(sample.TableLine(s)); err != nil {
				return err
			}
		}
	} else if r.plan.Primary != nil {
		if err := r.plan.Primary.WriteLine(sample.TableLine(s)); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// ECHO
	// ------------------------------------------------------------

	if r.plan.Echo {
		if err := r.plan.Console.WriteLine(sample.TableLine(s)); err != nil {
			return err
		}
	}

	return nil
}

// Close closes every sink and returns the last error.
// Calling Close more than once is a no-op.
func (r *Router) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var last error
	for _, s := range r.plan.sinks() {
		if err := s.Close(); err != nil {
			last = errors.Wrapf(err, "close %s", s.Name())
		}
	}
	return last
}
