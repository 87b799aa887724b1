package ranking

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/kiteco/fraudfilter/kite-golib/fileutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ROCPoint is one operating point of a classifier.
type ROCPoint struct {
	FalsePositiveRate float64
	TruePositiveRate  float64
	// Threshold is the lowest score classified as positive at this point
	Threshold float64
}

// ROC returns the ROC curve of scores, from (0, 0) to (1, 1), with one point per
// distinct score. Rates for an absent class are 0.
func ROC(labels []bool, scores []float64) []ROCPoint {
	var pos, neg int
	for _, l := range labels {
		if l {
			pos++
		} else {
			neg++
		}
	}

	curve := []ROCPoint{{Threshold: 1}}
	order := sortedByScore(scores, true)
	var tp, fp int
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && scores[order[j]] == scores[order[i]] {
			if labels[order[j]] {
				tp++
			} else {
				fp++
			}
			j++
		}
		curve = append(curve, ROCPoint{
			FalsePositiveRate: ratio(fp, neg),
			TruePositiveRate:  ratio(tp, pos),
			Threshold:         scores[order[i]],
		})
		i = j
	}
	return curve
}

// PlotROC renders the curve as an image to path, local or s3://. The format is taken
// from the extension, e.g. .png or .svg.
func PlotROC(curve []ROCPoint, auc float64, path string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = fmt.Sprintf("ROC curve (AUC = %.4f)", auc)
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	pts := make(plotter.XYs, len(curve))
	for i, pt := range curve {
		pts[i].X = pt.FalsePositiveRate
		pts[i].Y = pt.TruePositiveRate
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = color.RGBA{B: 255, A: 255, R: 50, G: 50}
	l.LineStyle.Width = vg.Points(2)

	chance, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if err != nil {
		return err
	}
	chance.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(plotter.NewGrid(), chance, l)
	p.Legend.Add("model", l)
	p.Legend.Add("chance", chance)
	p.Legend.Top = false

	format := fileutil.Ext(path)
	w, err := p.WriterTo(4*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return err
	}
	return fileutil.WriteFile(path, buf.Bytes())
}
