// Package render formats missingness reports as fixed-width terminal
// tables: one line per field path with the four report columns.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/gomissing/internal/report"
)

// Options control table formatting.
type Options struct {
	// Color paints the header row.
	Color bool
	// MaxKeysWidth truncates the missing_keys column to this display
	// width; 0 disables truncation.
	MaxKeysWidth int
}

var headers = [4]string{"field", "counts", "missing_keys", "missing_percent"}

// headerStyle paints the header when color output is enabled.
var headerStyle = color.New(color.FgCyan, color.OpBold)

// Table renders report rows as an aligned table.
func Table(rows []report.Row, opts *Options) string {
	if opts == nil {
		opts = &Options{}
	}

	cells := make([][4]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, [4]string{
			row.Field,
			fmt.Sprintf("%d", row.Counts),
			keysText(row, opts.MaxKeysWidth),
			fmt.Sprintf("%.2f", row.MissingPercent),
		})
	}

	var widths [4]int
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(row [4]string, paint bool) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			padded := pad(cell, widths[i], i == 1 || i == 3)
			if paint {
				padded = headerStyle.Sprint(padded)
			}
			b.WriteString(padded)
		}
		b.WriteByte('\n')
	}

	writeRow(headers, opts.Color)
	var rule [4]string
	for i := range rule {
		rule[i] = strings.Repeat("-", widths[i])
	}
	writeRow(rule, false)
	for _, row := range cells {
		writeRow(row, false)
	}
	return b.String()
}

// pad aligns a cell to the column width; numeric columns are
// right-aligned.
func pad(cell string, width int, right bool) string {
	gap := width - runewidth.StringWidth(cell)
	if gap <= 0 {
		return cell
	}
	if right {
		return strings.Repeat(" ", gap) + cell
	}
	return cell + strings.Repeat(" ", gap)
}

// keysText renders the missing-key list as compact JSON.
func keysText(row report.Row, maxWidth int) string {
	if len(row.MissingKeys) == 0 {
		return "[]"
	}
	data, err := json.Marshal(row.MissingKeys)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	text := string(data)
	if maxWidth > 0 && runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "...")
	}
	return text
}
