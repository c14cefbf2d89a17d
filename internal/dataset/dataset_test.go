package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantLabels []int
		wantScores []float64
	}{
		{
			name:       "named_header",
			input:      "label,score\n1,0.9\n1,0.6\n0,0.4\n0,0.1\n",
			wantLabels: []int{1, 1, 0, 0},
			wantScores: []float64{0.9, 0.6, 0.4, 0.1},
		},
		{
			name:       "reordered_header",
			input:      "id,Score,LABEL\na,0.7,1\nb,0.2,0\n",
			wantLabels: []int{1, 0},
			wantScores: []float64{0.7, 0.2},
		},
		{
			name:       "alternate_names",
			input:      "y_true,y_score\n0,0.55\n",
			wantLabels: []int{0},
			wantScores: []float64{0.55},
		},
		{
			name:       "no_header",
			input:      "1, 0.8\n0, 0.3\n",
			wantLabels: []int{1, 0},
			wantScores: []float64{0.8, 0.3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, tc.wantLabels, s.Labels)
			assert.Equal(t, tc.wantScores, s.Scores)
			assert.Equal(t, len(tc.wantLabels), s.Len())
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr error
		errText string
	}{
		{"empty", "", ErrEmpty, ""},
		{"header_only", "label,score\n", ErrEmpty, ""},
		{"bad_label_value", "label,score\n2,0.5\n", ErrBadLabel, ""},
		{"unparsable_label", "label,score\nyes,0.5\n", nil, "invalid label"},
		{"unparsable_score", "label,score\n1,high\n", nil, "invalid score"},
		{"single_column", "1\n0\n", nil, "expected at least 2 columns"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input))
			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
			if tc.errText != "" {
				assert.Contains(t, err.Error(), tc.errText)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("label,score\n1,0.9\n0,0.1\n"), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Positives())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFromLists(t *testing.T) {
	s, err := FromLists("1,1,0,0", "0.9, 0.6, 0.4, 0.1")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 0, 0}, s.Labels)
	assert.Equal(t, []float64{0.9, 0.6, 0.4, 0.1}, s.Scores)

	_, err = FromLists("1,0", "0.9")
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = FromLists("", "")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = FromLists("1,x", "0.1,0.2")
	assert.Error(t, err)

	_, err = FromLists("1,,0", "0.9,0.2")
	assert.ErrorIs(t, err, ErrEmptyField)
	assert.ErrorContains(t, err, "label 2")
}

func TestParseCSVFloat64s(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []float64
		expectErr bool
	}{
		{"empty_string", "", nil, false},
		{"single_value", "0.5", []float64{0.5}, false},
		{"with_spaces", " 0.1 , 0.2 ", []float64{0.1, 0.2}, false},
		{"empty_parts", "0.1,,0.3", nil, true},
		{"only_comma", ",", nil, true},
		{"invalid_value", "0.1,abc", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCSVFloat64s(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestParseCSVInts(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  []int
		expectErr bool
	}{
		{"empty_string", "", nil, false},
		{"binary_values", "1,0,1", []int{1, 0, 1}, false},
		{"trailing_comma", "1,0,", nil, true},
		{"blank_field", "1, ,0", nil, true},
		{"invalid_float", "0.5", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseCSVInts(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestSamples_Validate(t *testing.T) {
	assert.NoError(t, Samples{Labels: []int{0, 1}, Scores: []float64{0.1, 0.9}}.Validate())
	assert.ErrorIs(t, Samples{}.Validate(), ErrEmpty)
	assert.ErrorIs(t, Samples{Labels: []int{1, -1}, Scores: []float64{0.1, 0.2}}.Validate(), ErrBadLabel)
}
