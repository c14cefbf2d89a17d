package chart

import (
	"fmt"
	"image/color"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/thresholdviz/internal/metrics"
)

// RenderHTML writes the threshold chart as an interactive go-echarts page.
// The highlighted points become mark points on their series.
func RenderHTML(w io.Writer, res metrics.Result, modelName string) error {
	hl, err := Analyse(res)
	if err != nil {
		return err
	}
	if modelName == "" {
		modelName = DefaultModelName
	}

	xs := make([]string, res.Len())
	for i, th := range res.Thresholds {
		xs[i] = fmt.Sprintf("%.2f", th)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: modelName + " threshold metrics", Width: "1600px", Height: "1000px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s: Precision, Recall, and Accuracy vs. Decision Threshold", modelName)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Decision Threshold", NameLocation: "middle", NameGap: 30}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Metric Value", NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(xs)

	series := []struct {
		name  string
		ys    []float64
		color color.RGBA
		marks []opts.MarkPointNameCoordItem
	}{
		{"Precision", res.Precision, ColorPrecision, append(
			maximaMarks("Max Precision", xs, res.Precision, hl.MaxPrecision),
			markPoint("Max Jump In Precision", xs, res.Precision, hl.PrecisionJump),
		)},
		{"Recall", res.Recall, ColorRecall, append(
			maximaMarks("Max Recall", xs, res.Recall, hl.MaxRecall),
			markPoint("Max Dropoff In Recall", xs, res.Recall, hl.RecallDrop),
		)},
		{"Accuracy", res.Accuracy, ColorAccuracy, append(
			maximaMarks("Max Accuracy", xs, res.Accuracy, hl.MaxAccuracy),
			markPoint("Max Jump In Accuracy", xs, res.Accuracy, hl.AccuracyJump),
		)},
		{"F1 Score", hl.F1, ColorF1, maximaMarks("Max F Score", xs, hl.F1, hl.MaxF1)},
	}

	for _, s := range series {
		data := make([]opts.LineData, len(s.ys))
		for i, v := range s.ys {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(s.name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true), Symbol: "circle"}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(s.color)}),
			charts.WithMarkPointNameCoordItemOpts(s.marks...),
		)
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("render html chart: %w", err)
	}
	return nil
}

func markPoint(label string, xs []string, ys []float64, idx int) opts.MarkPointNameCoordItem {
	return opts.MarkPointNameCoordItem{
		Name:       label,
		Value:      label,
		Coordinate: []interface{}{xs[idx], ys[idx]},
	}
}

// maximaMarks marks every index of a tie-set. Only the first carries the
// label text.
func maximaMarks(label string, xs []string, ys []float64, idx []int) []opts.MarkPointNameCoordItem {
	marks := make([]opts.MarkPointNameCoordItem, 0, len(idx))
	for i, k := range idx {
		if i == 0 {
			marks = append(marks, markPoint(label, xs, ys, k))
			continue
		}
		marks = append(marks, opts.MarkPointNameCoordItem{
			Coordinate: []interface{}{xs[k], ys[k]},
			Label:      &opts.Label{Show: opts.Bool(false)},
		})
	}
	return marks
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
