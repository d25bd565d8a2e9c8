package ascii

import (
	"strings"

	"github.com/holgern/piltext/pkg/geometry"
	"github.com/holgern/piltext/pkg/layout"
)

// linesPerRow is the character height of one grid row in the text dump.
const linesPerRow = 3

// GridText lays the entries out as plain text, preserving the grid
// structure: each grid row becomes three character lines, merged cells get
// the combined width, and the entry's anchor picks the alignment. Useful
// for checking a config without rendering an image.
func GridText(table *geometry.Table, entries []layout.TextEntry, width int) (string, error) {
	spec := table.Spec()
	cellW := width / spec.Cols
	if cellW < 1 {
		cellW = 1
	}

	lines := make([][]rune, spec.Rows*linesPerRow)
	for i := range lines {
		lines[i] = []rune(strings.Repeat(" ", cellW*spec.Cols))
	}

	for _, e := range entries {
		span, err := table.Span(e.Cell)
		if err != nil {
			return "", err
		}

		anchor := e.Style.Anchor
		if len(anchor) != 2 {
			anchor = "mm"
		}

		spanW := (span.EndCol - span.StartCol + 1) * cellW
		text := alignText(e.Text, spanW, anchor[0])

		var row int
		switch anchor[1] {
		case 't':
			row = span.StartRow * linesPerRow
		case 'b', 's', 'd':
			row = (span.EndRow+1)*linesPerRow - 1
		default:
			row = span.StartRow*linesPerRow + ((span.EndRow-span.StartRow+1)*linesPerRow)/2
		}

		copy(lines[row][span.StartCol*cellW:], []rune(text))
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(string(l), " ")
	}
	return strings.Join(out, "\n"), nil
}

// alignText pads or truncates text to width using the horizontal anchor
// character (l, m or r).
func alignText(text string, width int, h byte) string {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[:width]
	}
	pad := width - len(runes)

	switch h {
	case 'l':
		return string(runes) + strings.Repeat(" ", pad)
	case 'r':
		return strings.Repeat(" ", pad) + string(runes)
	default:
		left := pad / 2
		return strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left)
	}
}
