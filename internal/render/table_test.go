package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gomissing/internal/dataset"
	"github.com/dbsmedya/gomissing/internal/report"
)

func sampleRows() []report.Row {
	return []report.Row{
		{Field: "k1", Counts: 0, MissingPercent: 0},
		{
			Field:  "detailed_struct.long_field1",
			Counts: 1,
			MissingKeys: []dataset.Key{
				{{Name: "k1", Value: "key3"}, {Name: "k2", Value: "key4"}},
			},
			MissingPercent: 50,
		},
	}
}

func TestTable_Layout(t *testing.T) {
	out := Table(sampleRows(), nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4, "header, rule, two rows")

	assert.Contains(t, lines[0], "field")
	assert.Contains(t, lines[0], "missing_percent")
	assert.True(t, strings.HasPrefix(lines[1], "---"), "rule line")
	assert.Contains(t, lines[2], "[]", "empty key list renders as []")
	assert.Contains(t, lines[3], `{"k1":"key3","k2":"key4"}`)
	assert.Contains(t, lines[3], "50.00")

	// All lines align to the same width.
	width := len(lines[1])
	for _, line := range lines {
		assert.Equal(t, width, len(line))
	}
}

func TestTable_KeyTruncation(t *testing.T) {
	out := Table(sampleRows(), &Options{MaxKeysWidth: 10})
	assert.NotContains(t, out, `{"k1":"key3","k2":"key4"}`)
	assert.Contains(t, out, "...")
}

func TestTable_Empty(t *testing.T) {
	out := Table(nil, nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2, "header and rule only")
}

func TestTable_ColorDoesNotBreakAlignment(t *testing.T) {
	plain := Table(sampleRows(), &Options{Color: false})
	colored := Table(sampleRows(), &Options{Color: true})

	// Data rows are identical; only the header carries escape codes.
	plainLines := strings.Split(plain, "\n")
	coloredLines := strings.Split(colored, "\n")
	require.Equal(t, len(plainLines), len(coloredLines))
	for i := 1; i < len(plainLines); i++ {
		assert.Equal(t, plainLines[i], coloredLines[i])
	}
}
