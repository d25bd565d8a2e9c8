// Package layout turns grid cell references and text entries into an ordered
// sequence of draw instructions.
//
// The package is the pure core of piltext: it composes the cell geometry
// table (pkg/geometry) with anchor resolution and layered style defaults to
// produce fully resolved DrawInstructions. It performs no measurement, no
// drawing and no I/O; text that exceeds its rectangle is the renderer's
// concern.
//
// Build is deterministic and all-or-nothing: identical inputs yield an
// identical instruction sequence, and any failure returns no instructions
// at all.
package layout

import (
	"fmt"

	"github.com/holgern/piltext/pkg/geometry"
)

// TextEntry is one piece of text targeted at a grid cell, with optional
// per-entry style overrides layered over the grid and global defaults.
type TextEntry struct {
	Cell  geometry.CellRef
	Text  string
	Style Style
}

// DrawInstruction is a fully resolved, ready-to-render unit. It is immutable
// once produced; the renderer consumes instructions in order, so later
// entries may deliberately draw over earlier ones.
type DrawInstruction struct {
	Text   string
	Rect   geometry.Rect
	Anchor string
	Font   FontSpec
	Fill   string
}

// Build resolves entries against the geometry table and the style layers and
// returns the draw instructions in entry order.
//
// Styles resolve with precedence entry > grid > global. Cell resolution
// failures (INDEX_OUT_OF_RANGE, DEGENERATE_GEOMETRY) and unknown anchors
// (INVALID_ANCHOR) propagate unchanged; on any error no partial sequence is
// returned.
func Build(table *geometry.Table, global, grid Style, entries []TextEntry) ([]DrawInstruction, error) {
	instructions := make([]DrawInstruction, 0, len(entries))

	for i, entry := range entries {
		rect, err := table.Rect(entry.Cell)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, entry.Cell, err)
		}

		style := ResolveStyle(global, grid, entry.Style)
		if err := ValidateAnchor(style.Anchor); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i, entry.Cell, err)
		}

		instructions = append(instructions, DrawInstruction{
			Text:   entry.Text,
			Rect:   rect,
			Anchor: style.Anchor,
			Font: FontSpec{
				Name:      style.FontName,
				Variation: style.FontVariation,
				Size:      style.FontSize,
			},
			Fill: style.Fill,
		})
	}

	return instructions, nil
}
