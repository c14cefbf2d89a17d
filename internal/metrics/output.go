package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
)

// CSVWriter wraps csv.Writer with methods for sweep output.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter writing to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (c *CSVWriter) WriteHeader() error {
	return c.w.Write([]string{"threshold", "precision", "recall", "accuracy"})
}

// WriteResult writes one row per threshold.
func (c *CSVWriter) WriteResult(res Result) error {
	if err := res.Validate(); err != nil {
		return err
	}
	if res.Len() == 0 {
		log.Printf("WARNING: No thresholds to write")
		return nil
	}
	for i, th := range res.Thresholds {
		row := []string{
			fmt.Sprintf("%.2f", th),
			fmt.Sprintf("%.3f", res.Precision[i]),
			fmt.Sprintf("%.6f", res.Recall[i]),
			fmt.Sprintf("%.6f", res.Accuracy[i]),
		}
		if err := c.w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return nil
}

// Flush flushes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// WriteCSV writes the header and every row of res to w.
func WriteCSV(w io.Writer, res Result) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteResult(res); err != nil {
		return err
	}
	return cw.Flush()
}
