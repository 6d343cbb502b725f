package flatten

import (
	"strconv"
	"strings"

	"github.com/LaffeyOvO/notesnook/core/wrap"
	"golang.org/x/net/html"
)

// formatDataTable renders a table as aligned columns. Header cells are
// upper-cased and cell content wraps at maxColumnWidth. A colspan pads the
// row with empty cells, at most maxColspan columns per cell.
func formatDataTable(w *walker, n *html.Node) {
	var rows [][]string
	for _, tr := range tableRows(n) {
		var row []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
				continue
			}
			cw := w.f.newWalker(maxColumnWidth)
			cw.children(c)
			text := cw.result()
			if c.Data == "th" {
				text = strings.ToUpper(text)
			}
			row = append(row, text)

			if span, err := strconv.Atoi(attr(c, "colspan")); err == nil && span > 1 {
				span = min(span, maxColspan)
				for i := 1; i < span; i++ {
					row = append(row, "")
				}
			}
		}
		rows = append(rows, row)
	}
	w.top().add(renderRows(rows), 2, 2)
}

// tableRows returns the rows of a table in order, looking through
// thead/tbody/tfoot but not into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.Data {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			for r := c.FirstChild; r != nil; r = r.NextSibling {
				if r.Type == html.ElementNode && r.Data == "tr" {
					rows = append(rows, r)
				}
			}
		}
	}
	return rows
}

func renderRows(rows [][]string) string {
	var widths []int
	cells := make([][][]string, len(rows))
	for i, row := range rows {
		cells[i] = make([][]string, len(row))
		for j, text := range row {
			lines := strings.Split(text, "\n")
			cells[i][j] = lines
			if j >= len(widths) {
				widths = append(widths, 0)
			}
			for _, l := range lines {
				widths[j] = max(widths[j], wrap.Width(l))
			}
		}
	}

	var out []string
	for _, row := range cells {
		height := 0
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for k := 0; k < height; k++ {
			var b strings.Builder
			for j, lines := range row {
				if j > 0 {
					b.WriteString(strings.Repeat(" ", colSpacing))
				}
				l := ""
				if k < len(lines) {
					l = lines[k]
				}
				b.WriteString(l)
				b.WriteString(strings.Repeat(" ", widths[j]-wrap.Width(l)))
			}
			out = append(out, strings.TrimRight(b.String(), " "))
		}
	}
	return strings.TrimRight(strings.Join(out, "\n"), "\n")
}
