// Package chart derives F1 and notable points from a threshold sweep and
// renders them as a single diagnostic chart.
package chart

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/thresholdviz/internal/metrics"
)

var (
	// ErrUndefinedF1 is returned when precision and recall are both zero at
	// some threshold. Rendering cannot continue past it.
	ErrUndefinedF1 = errors.New("chart: F1 undefined where precision+recall is zero")

	// ErrTooFewThresholds is returned when a result has fewer than two
	// thresholds, so no jump or drop can be located.
	ErrTooFewThresholds = errors.New("chart: need at least two thresholds")
)

// Highlights holds the derived F1 series and the indices of the points
// the chart calls out. Jump and drop indices point at the later of the two
// thresholds being compared.
type Highlights struct {
	F1 []float64

	PrecisionJump int
	AccuracyJump  int
	RecallDrop    int

	// Every index reaching the series maximum, ascending.
	MaxPrecision []int
	MaxRecall    []int
	MaxAccuracy  []int
	MaxF1        []int
}

// F1Scores returns 2PR/(P+R) per index.
func F1Scores(precision, recall []float64) ([]float64, error) {
	if len(precision) != len(recall) {
		return nil, fmt.Errorf("%w: %d precision vs %d recall values", metrics.ErrLengthMismatch, len(precision), len(recall))
	}
	out := make([]float64, len(precision))
	for i := range precision {
		p, r := precision[i], recall[i]
		if p+r == 0 {
			return nil, fmt.Errorf("%w (index %d)", ErrUndefinedF1, i)
		}
		out[i] = 2 * (p * r) / (p + r)
	}
	return out, nil
}

// Diffs returns values[i+1]-values[i]. Fewer than two values give nil.
func Diffs(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	floats.SubTo(out, values[1:], values[:len(values)-1])
	return out
}

// MaxIndices returns every index holding the maximum of values.
func MaxIndices(values []float64) []int {
	if len(values) == 0 {
		return nil
	}
	maxVal := floats.Max(values)
	var idx []int
	for i, v := range values {
		if v == maxVal {
			idx = append(idx, i)
		}
	}
	return idx
}

// Analyse computes F1 and the highlighted indices for res.
func Analyse(res metrics.Result) (Highlights, error) {
	if err := res.Validate(); err != nil {
		return Highlights{}, err
	}
	if res.Len() < 2 {
		return Highlights{}, fmt.Errorf("%w, got %d", ErrTooFewThresholds, res.Len())
	}

	f1, err := F1Scores(res.Precision, res.Recall)
	if err != nil {
		return Highlights{}, err
	}

	return Highlights{
		F1:            f1,
		PrecisionJump: floats.MaxIdx(Diffs(res.Precision)) + 1,
		AccuracyJump:  floats.MaxIdx(Diffs(res.Accuracy)) + 1,
		RecallDrop:    floats.MinIdx(Diffs(res.Recall)) + 1,
		MaxPrecision:  MaxIndices(res.Precision),
		MaxRecall:     MaxIndices(res.Recall),
		MaxAccuracy:   MaxIndices(res.Accuracy),
		MaxF1:         MaxIndices(f1),
	}, nil
}
