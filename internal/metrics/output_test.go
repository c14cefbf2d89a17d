package metrics

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	res := Sweep(exampleLabels, exampleScores)

	require.NoError(t, WriteCSV(&buf, res))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 11)

	assert.Equal(t, []string{"threshold", "precision", "recall", "accuracy"}, records[0])
	assert.Equal(t, []string{"0.50", "1.000", "1.000000", "1.000000"}, records[1])
	assert.Equal(t, []string{"0.60", "1.000", "0.833333", "0.916667"}, records[3])
	assert.Equal(t, "0.95", records[10][0])
}

func TestWriteCSV_Misaligned(t *testing.T) {
	var buf bytes.Buffer
	res := Result{Thresholds: []float64{0.5}, Precision: []float64{1}}

	err := WriteCSV(&buf, res)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestCSVWriter_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteResult(Result{}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}
