package admin

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxCellWidth = 32

// table lays out cells by display width, so wide runes stay aligned.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = runewidth.Truncate(cells[i], maxCellWidth, "…")
		}
	}
	t.rows = append(t.rows, row)
}

func (t *table) render(w io.Writer, pal Palette) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				padded[i] = cell
				continue
			}
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	io.WriteString(w, pal.Title(line(t.headers))+"\n")
	for _, row := range t.rows {
		io.WriteString(w, line(row)+"\n")
	}
}
