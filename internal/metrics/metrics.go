// Package metrics computes binary-classification metrics over a fixed
// sweep of decision thresholds. Scores strictly above a threshold are
// predicted positive.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrLengthMismatch is returned by Result.Validate when the metric slices
// are not aligned with the threshold slice.
var ErrLengthMismatch = errors.New("metrics: slice length mismatch")

// Threshold sweep bounds, in hundredths.
const (
	sweepStart = 50
	sweepStop  = 100
	sweepStep  = 5
)

// Thresholds returns the fixed sweep 0.50, 0.55, ..., 0.95.
func Thresholds() []float64 {
	out := make([]float64, 0, (sweepStop-sweepStart)/sweepStep)
	for i := sweepStart; i < sweepStop; i += sweepStep {
		out = append(out, float64(i)/100)
	}
	return out
}

// Result holds one precision, recall and accuracy value per threshold.
// All four slices share the same index.
type Result struct {
	Thresholds []float64
	Precision  []float64
	Recall     []float64
	Accuracy   []float64
}

// Len returns the number of thresholds in the result.
func (r Result) Len() int {
	return len(r.Thresholds)
}

// Validate checks that every metric slice is aligned with Thresholds.
func (r Result) Validate() error {
	n := len(r.Thresholds)
	for _, s := range []struct {
		name   string
		values []float64
	}{
		{"precision", r.Precision},
		{"recall", r.Recall},
		{"accuracy", r.Accuracy},
	} {
		if len(s.values) != n {
			return fmt.Errorf("%w: %s has %d values for %d thresholds", ErrLengthMismatch, s.name, len(s.values), n)
		}
	}
	return nil
}

// Sweep classifies every sample at each threshold of Thresholds() and
// records precision, recall and accuracy.
//
// The confusion counts carry over from one threshold to the next: the
// values reported at threshold k are computed from the sum of the
// confusion matrices of thresholds 0..k. The first threshold therefore
// matches ConfusionAt, later ones do not.
//
// labels and scores must have the same length. Any label other than 1 is
// treated as negative.
func Sweep(labels []int, scores []float64) Result {
	thresholds := Thresholds()
	res := Result{
		Thresholds: thresholds,
		Precision:  make([]float64, 0, len(thresholds)),
		Recall:     make([]float64, 0, len(thresholds)),
		Accuracy:   make([]float64, 0, len(thresholds)),
	}

	var cm Confusion
	for _, threshold := range thresholds {
		cm.add(labels, scores, threshold)
		res.Precision = append(res.Precision, roundTo3(cm.Precision()))
		res.Recall = append(res.Recall, cm.Recall())
		res.Accuracy = append(res.Accuracy, cm.Accuracy())
	}
	return res
}

// Confusion is a binary confusion matrix.
type Confusion struct {
	TP int
	FP int
	TN int
	FN int
}

// ConfusionAt returns the confusion matrix for a single threshold.
func ConfusionAt(labels []int, scores []float64, threshold float64) Confusion {
	var cm Confusion
	cm.add(labels, scores, threshold)
	return cm
}

func (c *Confusion) add(labels []int, scores []float64, threshold float64) {
	for i := range labels {
		positive := labels[i] == 1
		if scores[i] > threshold {
			if positive {
				c.TP++
			} else {
				c.FP++
			}
		} else {
			if positive {
				c.FN++
			} else {
				c.TN++
			}
		}
	}
}

// Total returns the number of classified samples.
func (c Confusion) Total() int {
	return c.TP + c.FP + c.TN + c.FN
}

// Precision returns TP/(TP+FP), or 0 when nothing was predicted positive.
func (c Confusion) Precision() float64 {
	return safeDivide(c.TP, c.TP+c.FP)
}

// Recall returns TP/(TP+FN), or 0 when there are no positive labels.
func (c Confusion) Recall() float64 {
	return safeDivide(c.TP, c.TP+c.FN)
}

// Accuracy returns (TP+TN)/total. The denominator is not guarded: an
// empty matrix yields NaN.
func (c Confusion) Accuracy() float64 {
	return float64(c.TP+c.TN) / float64(c.Total())
}

func safeDivide(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// roundTo3 rounds the exact binary value of v to three decimals, sending
// exact ties to the even digit.
func roundTo3(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 3, 64), 64)
	return r
}
