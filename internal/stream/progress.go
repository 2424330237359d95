// internal/stream/progress.go
package stream

import "io"

const (
	// FeedbackPeriod is the number of receive attempts per progress mark.
	FeedbackPeriod = 48
	// LineWidth is the number of progress marks per line.
	LineWidth = 64
)

// progress writes one '/' every FeedbackPeriod receive attempts and
// breaks the line every LineWidth marks.
type progress struct {
	w     io.Writer
	count int64
}

func (p *progress) tick() {
	if p.w == nil {
		return
	}
	p.count++

	if p.count%FeedbackPeriod == 0 {
		_, _ = io.WriteString(p.w, "/")
	}
	if p.count%(FeedbackPeriod*LineWidth) == 0 {
		_, _ = io.WriteString(p.w, "\n")
	}
}
