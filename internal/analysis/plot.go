// internal/analysis/plot.go
package analysis

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot renders value over stream position and saves it to path.
// The format follows the extension (.pdf, .png, .svg).
// X is the unwrapped sequence id relative to the first point.
func Plot(s Series, title, path string) error {
	if s.Len() == 0 {
		return ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sequence"
	p.X.Label.Padding = vg.Points(5)
	p.Y.Label.Text = "Value"
	p.Y.Label.Padding = vg.Points(5)

	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(xys(s))
	if err != nil {
		return errors.Wrap(err, "plot line")
	}
	p.Add(line)

	if err := p.Save(8.5*vg.Inch, 3*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save plot %s", path)
	}
	return nil
}

func xys(s Series) plotter.XYs {
	data := make(plotter.XYs, len(s.Points))

	x := 0
	for i, pt := range s.Points {
		if i > 0 {
			x += int(pt.Seq - s.Points[i-1].Seq)
		}
		data[i] = plotter.XY{X: float64(x), Y: float64(pt.Value)}
	}
	return data
}
