// internal/writer/builder.go
package writer

import (
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	cfg "github.com/tamzrod/spll-reader/internal/config"
	"github.com/tamzrod/spll-reader/internal/sample"
	wmodbus "github.com/tamzrod/spll-reader/internal/writer/modbus"
)

// BuildSinks opens every destination the output config names.
// Without a file prefix the console is the primary destination: table
// lines, or CSV rows of every channel when demultiplexing.
// Assumes config has already passed validation.
// On any failure the files already opened by this call are closed.
func BuildSinks(o cfg.OutputConfig, console io.Writer) (Plan, error) {
	if console == nil {
		return Plan{}, errors.New("writer: console required")
	}

	plan := Plan{
		CSVDemux: o.CSVDemux,
		Echo:     o.Echo && o.HasFile(),
		Console:  &consoleSink{w: console},
	}

	// ------------------------------------------------------------
	// CONSOLE ONLY
	// ------------------------------------------------------------

	if o.ConsoleOnly() {
		if !o.CSVDemux {
			plan.Primary = plan.Console
			return plan, nil
		}
		if o.Header {
			if err := plan.Console.WriteLine(sample.Legend); err != nil {
				return Plan{}, errors.Wrap(err, "write legend")
			}
		}
		return plan, nil
	}

	// ------------------------------------------------------------
	// FILES
	// ------------------------------------------------------------

	if o.CSVDemux {
		for _, k := range sample.Kinds() {
			s, err := openFileSink(o.Prefix + k.Suffix())
			if err != nil {
				closeAll(plan.sinks())
				return Plan{}, err
			}
			plan.Channels[k] = s

			if o.Header {
				if err := s.WriteLine(sample.Legend); err != nil {
					closeAll(plan.sinks())
					return Plan{}, errors.Wrap(err, "write legend")
				}
			}
		}

		glog.Infof("writing %d channel files with prefix %q", sample.NumKinds, o.Prefix)
		return plan, nil
	}

	s, err := openFileSink(o.Prefix)
	if err != nil {
		return Plan{}, err
	}
	plan.Primary = s
	glog.Infof("writing table to %s", o.Prefix)

	return plan, nil
}

func closeAll(sinks []Sink) {
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			glog.Warningf("close %s: %v", s.Name(), err)
		}
	}
}

// BuildMirror creates the Modbus status mirror, or nil when disabled.
// Assumes config has already been normalized.
func BuildMirror(m cfg.MirrorConfig) (*StatusMirror, error) {
	if !m.Enabled() {
		return nil, nil
	}

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint:    m.Endpoint,
		Timeout:     time.Duration(m.TimeoutMs) * time.Millisecond,
		IdleTimeout: time.Duration(m.IdleTimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}

	// Not fatal: the first flush redials.
	if err := c.Connect(); err != nil {
		glog.Warningf("%v", err)
	}

	glog.Infof("mirroring stream status to %s unit=%d base=%d", m.Endpoint, m.UnitID, m.BaseAddress)

	return NewStatusMirror(MirrorPlan{
		UnitID:      m.UnitID,
		BaseAddress: m.BaseAddress,
		Interval:    time.Duration(m.IntervalMs) * time.Millisecond,
	}, c, c.Close), nil
}
