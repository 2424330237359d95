// internal/analysis/series.go
package analysis

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Point is one row of a channel file.
type Point struct {
	Seq    uint16
	Source uint8
	Value  int32
}

// Series is the content of one channel file, in file order.
type Series struct {
	Points []Point
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// Values returns the sample values as float64.
func (s Series) Values() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = float64(p.Value)
	}
	return out
}

// ReadChannel parses a demultiplexed channel file ("seq,source,value" rows).
// Legend lines and blank lines are skipped. A malformed row is an error.
func ReadChannel(r io.Reader) (Series, error) {
	var s Series

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++

		// Data rows start in column 0. Legend lines start with a letter
		// or a tab, and may hold digits after it.
		raw := sc.Text()
		if raw == "" || !startsWithDigit(raw) {
			continue
		}
		text := strings.TrimSpace(raw)

		p, err := parseRow(text)
		if err != nil {
			return Series{}, errors.Wrapf(err, "line %d", line)
		}
		s.Points = append(s.Points, p)
	}
	if err := sc.Err(); err != nil {
		return Series{}, errors.Wrap(err, "read channel")
	}

	return s, nil
}

func parseRow(text string) (Point, error) {
	f := strings.Split(text, ",")
	if len(f) != 3 {
		return Point{}, errors.Errorf("expected 3 fields, got %d: %q", len(f), text)
	}

	seq, err := strconv.ParseUint(f[0], 10, 16)
	if err != nil {
		return Point{}, errors.Wrap(err, "sequence id")
	}
	src, err := strconv.ParseUint(f[1], 10, 8)
	if err != nil {
		return Point{}, errors.Wrap(err, "source")
	}
	val, err := strconv.ParseInt(f[2], 10, 32)
	if err != nil {
		return Point{}, errors.Wrap(err, "value")
	}

	return Point{Seq: uint16(seq), Source: uint8(src), Value: int32(val)}, nil
}

func startsWithDigit(s string) bool {
	return s[0] >= '0' && s[0] <= '9'
}
