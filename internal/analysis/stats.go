// internal/analysis/stats.go
package analysis

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned when a series has no points.
var ErrNoData = errors.New("no data available")

// Summary holds the usual statistics of one channel.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for a single point
	PkPk   float64
	Max    float64
	Min    float64

	// Sequence accounting. Sequence ids wrap at 16 bits.
	// Span is the number of stream records from the first to the last point.
	// Gaps counts steps larger than one: expected in a demultiplexed
	// channel, where the other kinds own the missing ids.
	Span  int
	Gaps  int
	Wraps int
}

// Summarize computes the statistics of s.
func Summarize(s Series) (Summary, error) {
	if s.Len() == 0 {
		return Summary{}, ErrNoData
	}

	x := s.Values()

	sum := Summary{
		Count: len(x),
		Mean:  stat.Mean(x, nil),
		Max:   floats.Max(x),
		Min:   floats.Min(x),
	}
	sum.PkPk = sum.Max - sum.Min
	if len(x) > 1 {
		sum.StdDev = stat.StdDev(x, nil)
	}

	sum.Span = 1
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1].Seq, s.Points[i].Seq

		step := int(cur - prev) // uint16 arithmetic wraps
		if cur < prev {
			sum.Wraps++
		}
		if step > 1 {
			sum.Gaps++
		}
		sum.Span += step
	}

	return sum, nil
}

// Coverage returns the fraction of spanned stream records present in the series.
func (s Summary) Coverage() float64 {
	if s.Span == 0 {
		return 0
	}
	return float64(s.Count) / float64(s.Span)
}

// Print writes a short human-readable report.
func (s Summary) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"-- Stats ------------------------\n"+
			"-------- Count   : %d\n"+
			"-------- Mean    : %g\n"+
			"-------- StDev   : %g\n"+
			"-------- Pk-to-Pk: %g\n"+
			"-------- Max     : %g\n"+
			"-------- Min     : %g\n"+
			"-- Sequence ---------------------\n"+
			"-------- Span    : %d\n"+
			"-------- Gaps    : %d\n"+
			"-------- Wraps   : %d\n"+
			"-------- Coverage: %.3f\n",
		s.Count, s.Mean, s.StdDev, s.PkPk, s.Max, s.Min,
		s.Span, s.Gaps, s.Wraps, s.Coverage(),
	)
	return err
}
