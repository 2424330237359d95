// internal/writer/types.go
package writer

import "github.com/tamzrod/spll-reader/internal/sample"

// Sink is one line-oriented output destination.
type Sink interface {
	// WriteLine writes one complete rendered line.
	WriteLine(line string) error
	Close() error
	Name() string
}

// Plan is the fully-built set of sinks for one session.
// Channels is used in CSV demux mode, Primary in table mode.
type Plan struct {
	CSVDemux bool
	Echo     bool

	// Channels holds one sink per kind, indexed by kind code.
	// A nil channel writes its rows to the console.
	Channels [sample.NumKinds]Sink

	// Primary is the table destination: the table file or the console.
	Primary Sink

	// Console is always present.
	Console Sink
}

// sinks returns every sink of the plan in close order.
func (p Plan) sinks() []Sink {
	var out []Sink
	for _, s := range p.Channels {
		if s != nil {
			out = append(out, s)
		}
	}
	if p.Primary != nil && p.Primary != p.Console {
		out = append(out, p.Primary)
	}
	if p.Console != nil {
		out = append(out, p.Console)
	}
	return out
}
