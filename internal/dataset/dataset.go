// Package dataset loads ground-truth labels and model scores for a
// threshold sweep, either from a CSV file or from comma-separated lists.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrEmpty is returned when no samples were provided.
	ErrEmpty = errors.New("dataset: no samples")
	// ErrLengthMismatch is returned when labels and scores are not aligned.
	ErrLengthMismatch = errors.New("dataset: labels and scores differ in length")
	// ErrEmptyField is returned for a blank entry in a comma-separated list.
	ErrEmptyField = errors.New("dataset: empty list field")
	// ErrBadLabel is returned for a label other than 0 or 1.
	ErrBadLabel = errors.New("dataset: label must be 0 or 1")
)

// Samples holds index-aligned labels and scores.
type Samples struct {
	Labels []int
	Scores []float64
}

// Len returns the number of labels.
func (s Samples) Len() int {
	return len(s.Labels)
}

// Validate checks that the samples are non-empty, aligned and that every
// label is binary.
func (s Samples) Validate() error {
	if len(s.Labels) == 0 && len(s.Scores) == 0 {
		return ErrEmpty
	}
	if len(s.Labels) != len(s.Scores) {
		return fmt.Errorf("%w: %d labels, %d scores", ErrLengthMismatch, len(s.Labels), len(s.Scores))
	}
	for i, l := range s.Labels {
		if l != 0 && l != 1 {
			return fmt.Errorf("%w: got %d at row %d", ErrBadLabel, l, i)
		}
	}
	return nil
}

// Positives returns the number of samples labelled 1.
func (s Samples) Positives() int {
	n := 0
	for _, l := range s.Labels {
		if l == 1 {
			n++
		}
	}
	return n
}

// Load reads samples from CSV. A header row naming "label" and "score"
// columns selects them by name; otherwise the first two columns are used
// and the first row is treated as data.
func Load(r io.Reader) (Samples, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Samples{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Samples{}, ErrEmpty
	}

	labelCol, scoreCol := 0, 1
	if lc, sc, ok := headerColumns(records[0]); ok {
		labelCol, scoreCol = lc, sc
		records = records[1:]
	}

	var s Samples
	for i, rec := range records {
		if len(rec) <= labelCol || len(rec) <= scoreCol {
			return Samples{}, fmt.Errorf("row %d: expected at least %d columns, got %d", i+1, max(labelCol, scoreCol)+1, len(rec))
		}
		label, err := strconv.Atoi(strings.TrimSpace(rec[labelCol]))
		if err != nil {
			return Samples{}, fmt.Errorf("row %d: invalid label '%s': %w", i+1, rec[labelCol], err)
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(rec[scoreCol]), 64)
		if err != nil {
			return Samples{}, fmt.Errorf("row %d: invalid score '%s': %w", i+1, rec[scoreCol], err)
		}
		s.Labels = append(s.Labels, label)
		s.Scores = append(s.Scores, score)
	}

	if err := s.Validate(); err != nil {
		return Samples{}, err
	}
	return s, nil
}

func headerColumns(row []string) (labelCol, scoreCol int, ok bool) {
	labelCol, scoreCol = -1, -1
	for i, name := range row {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "label", "y_true", "target":
			labelCol = i
		case "score", "y_score", "prediction":
			scoreCol = i
		}
	}
	return labelCol, scoreCol, labelCol >= 0 && scoreCol >= 0
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string) (Samples, error) {
	cleanPath := filepath.Clean(path)
	f, err := os.Open(cleanPath)
	if err != nil {
		return Samples{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return Samples{}, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return s, nil
}

// FromLists builds samples from comma-separated label and score lists.
func FromLists(labels, scores string) (Samples, error) {
	ls, err := ParseCSVInts(labels)
	if err != nil {
		return Samples{}, fmt.Errorf("labels: %w", err)
	}
	ss, err := ParseCSVFloat64s(scores)
	if err != nil {
		return Samples{}, fmt.Errorf("scores: %w", err)
	}
	s := Samples{Labels: ls, Scores: ss}
	if err := s.Validate(); err != nil {
		return Samples{}, err
	}
	return s, nil
}

// ParseCSVFloat64s parses a comma-separated list of scores such as
// "0.9, 0.6, 0.4". An empty string yields nil; an empty field is an error.
func ParseCSVFloat64s(s string) ([]float64, error) {
	return parseList(s, "score", func(f string) (float64, error) {
		return strconv.ParseFloat(f, 64)
	})
}

// ParseCSVInts parses a comma-separated list of labels such as "1,0,1".
// An empty string yields nil; an empty field is an error.
func ParseCSVInts(s string) ([]int, error) {
	return parseList(s, "label", strconv.Atoi)
}

func parseList[T any](s, kind string, parse func(string) (T, error)) ([]T, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]T, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("%w: %s %d", ErrEmptyField, kind, i+1)
		}
		v, err := parse(f)
		if err != nil {
			return nil, fmt.Errorf("%s %d: invalid value %q: %w", kind, i+1, f, err)
		}
		out[i] = v
	}
	return out, nil
}
