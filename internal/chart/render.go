package chart

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"github.com/banshee-data/thresholdviz/internal/metrics"
)

// DefaultModelName is used in the title when no name is given.
const DefaultModelName = "Model"

// Default canvas size.
const (
	DefaultWidth  = 16 * vg.Inch
	DefaultHeight = 10 * vg.Inch
)

const legendColumns = 3

// Series colours.
var (
	ColorPrecision = color.RGBA{R: 100, G: 149, B: 237, A: 255} // cornflowerblue
	ColorRecall    = color.RGBA{R: 105, G: 105, B: 105, A: 255} // dimgrey
	ColorAccuracy  = color.RGBA{R: 60, G: 179, B: 113, A: 255}  // mediumseagreen
	ColorF1        = color.RGBA{R: 148, G: 0, B: 211, A: 255}   // darkviolet
	colorGrid      = color.Gray{Y: 128}
)

// Annotation is a text label placed just above a highlighted point.
type Annotation struct {
	X, Y  float64
	Text  string
	Color color.Color
}

// Chart is a rendered threshold chart. Its legend is drawn in columns below
// the plot area; Plot.Legend is left empty.
type Chart struct {
	Plot        *plot.Plot
	Highlights  Highlights
	Annotations []Annotation

	legend  []legendEntry
	columns int
}

type legendEntry struct {
	label  string
	thumbs []plot.Thumbnailer
}

// Render builds the threshold chart for res. modelName appears in the
// title and defaults to DefaultModelName. It fails with ErrUndefinedF1 if
// precision and recall are both zero at any threshold.
func Render(res metrics.Result, modelName string) (*Chart, error) {
	hl, err := Analyse(res)
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = DefaultModelName
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: Precision, Recall, and Accuracy vs. Decision Threshold", modelName)
	p.X.Label.Text = "Decision Threshold"
	p.Y.Label.Text = "Metric Value"

	grid := plotter.NewGrid()
	for _, ls := range []*draw.LineStyle{&grid.Vertical, &grid.Horizontal} {
		ls.Color = colorGrid
		ls.Width = vg.Points(0.25)
		ls.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	}
	p.Add(grid)

	ch := &Chart{Plot: p, Highlights: hl, columns: legendColumns}

	series := []struct {
		name  string
		ys    []float64
		color color.Color
	}{
		{"Precision", res.Precision, ColorPrecision},
		{"Recall", res.Recall, ColorRecall},
		{"Accuracy", res.Accuracy, ColorAccuracy},
		{"F1 Score", hl.F1, ColorF1},
	}
	for _, s := range series {
		line, points, err := plotter.NewLinePoints(xyPoints(res.Thresholds, s.ys))
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1.5)
		points.GlyphStyle = draw.GlyphStyle{Color: s.color, Radius: vg.Points(1.5), Shape: draw.CircleGlyph{}}
		p.Add(line, points)
		ch.legend = append(ch.legend, legendEntry{label: s.name, thumbs: []plot.Thumbnailer{line, points}})
	}

	// Jump and drop points carry their own legend entries.
	notable := []struct {
		name  string
		label string
		idx   int
		ys    []float64
		color color.Color
	}{
		{"Max Jump Precision", "Max Jump In Precision", hl.PrecisionJump, res.Precision, ColorPrecision},
		{"Max Jump Accuracy", "Max Jump In Accuracy", hl.AccuracyJump, res.Accuracy, ColorAccuracy},
		{"Max Dropoff Recall", "Max Dropoff In Recall", hl.RecallDrop, res.Recall, ColorRecall},
	}
	for _, n := range notable {
		sc, err := highlight(res.Thresholds, n.ys, []int{n.idx}, n.color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.name, err)
		}
		p.Add(sc)
		ch.legend = append(ch.legend, legendEntry{label: n.name, thumbs: []plot.Thumbnailer{sc}})
	}

	maxima := []struct {
		label string
		idx   []int
		ys    []float64
		color color.Color
	}{
		{"Max F Score", hl.MaxF1, hl.F1, ColorF1},
		{"Max Precision", hl.MaxPrecision, res.Precision, ColorPrecision},
		{"Max Recall", hl.MaxRecall, res.Recall, ColorRecall},
		{"Max Accuracy", hl.MaxAccuracy, res.Accuracy, ColorAccuracy},
	}
	for _, m := range maxima {
		sc, err := highlight(res.Thresholds, m.ys, m.idx, m.color)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.label, err)
		}
		p.Add(sc)
		// Only the first of a tie gets text; the rest would overlap.
		first := m.idx[0]
		ch.Annotations = append(ch.Annotations, Annotation{X: res.Thresholds[first], Y: m.ys[first], Text: m.label, Color: m.color})
	}

	for _, n := range notable {
		ch.Annotations = append(ch.Annotations, Annotation{
			X:     res.Thresholds[n.idx],
			Y:     n.ys[n.idx],
			Text:  n.label,
			Color: n.color,
		})
	}

	labels, err := annotationLabels(ch.Annotations)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	return ch, nil
}

func xyPoints(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func highlight(xs, ys []float64, idx []int, c color.Color) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, 0, len(idx))
	for _, i := range idx {
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	return sc, nil
}

func annotationLabels(anns []Annotation) (*plotter.Labels, error) {
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(anns)),
		Labels: make([]string, len(anns)),
	}
	for i, a := range anns {
		xyl.XYs[i] = plotter.XY{X: a.X, Y: a.Y}
		xyl.Labels[i] = a.Text
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	for i, a := range anns {
		labels.TextStyle[i].Color = a.Color
		labels.TextStyle[i].XAlign = text.XCenter
	}
	labels.Offset = vg.Point{Y: vg.Points(10)}
	return labels, nil
}

// Draw draws the plot and the legend strip beneath it onto c.
func (ch *Chart) Draw(c draw.Canvas) {
	sty := ch.Plot.Legend.TextStyle
	sty.XAlign = text.XLeft
	sty.YAlign = text.YCenter

	pad := vg.Points(8)
	rowH := sty.Height("Mg") * 1.6
	rows := (len(ch.legend) + ch.columns - 1) / ch.columns
	legendH := rowH*vg.Length(rows) + 2*pad

	ch.Plot.Draw(draw.Crop(c, 0, 0, legendH, 0))

	thumbW := vg.Points(20)
	colW := (c.Max.X - c.Min.X) / vg.Length(ch.columns)
	for i, e := range ch.legend {
		col, row := i%ch.columns, i/ch.columns
		x := c.Min.X + colW*vg.Length(col) + pad
		y := c.Min.Y + legendH - pad - rowH*vg.Length(row+1)

		tc := draw.Canvas{
			Canvas: c.Canvas,
			Rectangle: vg.Rectangle{
				Min: vg.Point{X: x, Y: y},
				Max: vg.Point{X: x + thumbW, Y: y + rowH},
			},
		}
		for _, t := range e.thumbs {
			t.Thumbnail(&tc)
		}
		c.FillText(sty, vg.Point{X: x + thumbW + pad/2, Y: y + rowH/2}, e.label)
	}
}

// WriterTo returns an io.WriterTo that writes the chart in the given
// format (png, svg, pdf, eps, jpg, tif).
func (ch *Chart) WriterTo(w, h vg.Length, format string) (io.WriterTo, error) {
	cw, err := draw.NewFormattedCanvas(w, h, format)
	if err != nil {
		return nil, err
	}
	ch.Draw(draw.New(cw))
	return cw, nil
}

// Save writes the chart to file, choosing the format from its extension.
func (ch *Chart) Save(w, h vg.Length, file string) (err error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))
	wt, err := ch.WriterTo(w, h, format)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = wt.WriteTo(f); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	return nil
}
