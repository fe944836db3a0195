package report

import (
	"words/ledger"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrNothingToPlot = errors.New("no entries to plot")

// PlotFrequencies saves a bar chart of the top most frequent entries to
// path, in sorted order. top <= 0 plots every entry. The image format
// follows the file extension.
func PlotFrequencies(path string, l *ledger.Ledger, top int) error {
	es := l.Sorted()
	if len(es) == 0 {
		return ErrNothingToPlot
	}
	if top > 0 && top < len(es) {
		es = es[len(es)-top:]
	}

	values := make(plotter.Values, len(es))
	names := make([]string, len(es))
	for i, e := range es {
		values[i] = float64(e.Count)
		names[i] = e.Word
	}

	p := plot.New()
	p.Title.Text = "word frequencies"
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return errors.Wrap(err, "building bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	width := vg.Length(len(es)) * vg.Points(18)
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	return errors.Wrapf(p.Save(width, 4*vg.Inch, path), "saving plot %s", path)
}
