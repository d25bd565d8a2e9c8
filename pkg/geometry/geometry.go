// Package geometry computes pixel rectangles for grid cells.
//
// A grid divides a pixel canvas into rows and columns separated by margins.
// Cells can be merged into rectangular regions that are addressed as a single
// unit. The package is pure: a Table is built once from a GridSpec and a list
// of merge regions, and rectangle resolution has no side effects.
//
// # Boundaries
//
// Cell boundaries are computed cumulatively rather than by rounding each cell
// independently. This guarantees that adjacent cells never overlap and are
// separated by exactly the configured margin, with no rounding drift across
// the grid. Per-cell widths may therefore differ by one pixel.
package geometry

import (
	"fmt"

	"github.com/holgern/piltext/pkg/errors"
)

// GridSpec describes the grid dimensions and the canvas it is laid onto.
// All values are pixels. Margins are applied around every cell, including
// the canvas edges, so the usable content width is
// Width - (Cols+1)*MarginX (and analogously for height).
type GridSpec struct {
	Rows    int
	Cols    int
	MarginX int
	MarginY int
	Width   int
	Height  int
}

// validate checks the spec invariants.
func (s GridSpec) validate() error {
	if s.Rows < 1 || s.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid must have at least one row and one column, got %dx%d", s.Rows, s.Cols)
	}
	if s.MarginX < 0 || s.MarginY < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margins cannot be negative, got (%d,%d)", s.MarginX, s.MarginY)
	}
	if s.Width < 1 || s.Height < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.contentWidth() <= 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"canvas width %d leaves no usable area for %d columns with margin %d", s.Width, s.Cols, s.MarginX)
	}
	if s.contentHeight() <= 0 {
		return errors.New(errors.ErrCodeDegenerateGeometry,
			"canvas height %d leaves no usable area for %d rows with margin %d", s.Height, s.Rows, s.MarginY)
	}
	return nil
}

func (s GridSpec) contentWidth() int  { return s.Width - (s.Cols+1)*s.MarginX }
func (s GridSpec) contentHeight() int { return s.Height - (s.Rows+1)*s.MarginY }

// Rect is a pixel rectangle with exclusive-feeling but inclusive drawing
// semantics: (X0,Y0) is the top-left corner, (X1,Y1) the bottom-right,
// X0 < X1 and Y0 < Y1 for any valid cell.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int { return r.Y1 - r.Y0 }

// MergeRegion is an inclusive rectangular span of cells folded into one
// addressable unit. Start must be component-wise ≤ End.
type MergeRegion struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// contains reports whether the region covers the given cell.
func (m MergeRegion) contains(row, col int) bool {
	return row >= m.StartRow && row <= m.EndRow && col >= m.StartCol && col <= m.EndCol
}

// overlaps reports whether two regions share at least one cell.
func (m MergeRegion) overlaps(o MergeRegion) bool {
	return m.StartRow <= o.EndRow && o.StartRow <= m.EndRow &&
		m.StartCol <= o.EndCol && o.StartCol <= m.EndCol
}

// refKind selects the addressing mode of a CellRef.
type refKind int

const (
	refAt    refKind = iota // explicit (row, col)
	refIndex                // positional index into the merge table
)

// CellRef addresses a cell either by explicit (row, col) coordinates or by
// the position of a merge region in declaration order. The two modes are
// distinct variants; there is no implicit coercion between them.
type CellRef struct {
	kind     refKind
	index    int
	row, col int
}

// At addresses the cell at (row, col).
func At(row, col int) CellRef {
	return CellRef{kind: refAt, row: row, col: col}
}

// Index addresses the n-th merge region in declaration order.
func Index(n int) CellRef {
	return CellRef{kind: refIndex, index: n}
}

// String renders the reference for error messages and logs.
func (r CellRef) String() string {
	if r.kind == refIndex {
		return fmt.Sprintf("merge[%d]", r.index)
	}
	return fmt.Sprintf("(%d,%d)", r.row, r.col)
}

// Table resolves cell references to pixel rectangles for one grid.
// It is immutable after construction and safe for concurrent reads.
type Table struct {
	spec    GridSpec
	regions []MergeRegion
}

// NewTable builds a resolution table from a grid spec and its merge regions.
// It fails with INVALID_MERGE_REGION if any region is out of bounds, has
// start > end, or overlaps another region, and with DEGENERATE_GEOMETRY if
// the canvas leaves no usable cell area.
func NewTable(spec GridSpec, regions []MergeRegion) (*Table, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	for i, m := range regions {
		if m.StartRow > m.EndRow || m.StartCol > m.EndCol {
			return nil, errors.New(errors.ErrCodeInvalidMergeRegion,
				"merge region %d has start (%d,%d) after end (%d,%d)", i, m.StartRow, m.StartCol, m.EndRow, m.EndCol)
		}
		if m.StartRow < 0 || m.StartCol < 0 || m.EndRow >= spec.Rows || m.EndCol >= spec.Cols {
			return nil, errors.New(errors.ErrCodeInvalidMergeRegion,
				"merge region %d spans (%d,%d)-(%d,%d) outside %dx%d grid", i, m.StartRow, m.StartCol, m.EndRow, m.EndCol, spec.Rows, spec.Cols)
		}
		for j := 0; j < i; j++ {
			if m.overlaps(regions[j]) {
				return nil, errors.New(errors.ErrCodeInvalidMergeRegion,
					"merge regions %d and %d overlap", j, i)
			}
		}
	}

	t := &Table{spec: spec}
	t.regions = append(t.regions, regions...)
	return t, nil
}

// Spec returns the grid spec the table was built from.
func (t *Table) Spec() GridSpec { return t.spec }

// Regions returns the merge regions in declaration order.
// The returned slice must not be modified.
func (t *Table) Regions() []MergeRegion { return t.regions }

// cellLeft returns the left content boundary of column c.
// Boundaries are cumulative: col c is preceded by c+1 margins and the
// floor-divided share of the content width.
func (t *Table) cellLeft(c int) int {
	return (c+1)*t.spec.MarginX + c*t.spec.contentWidth()/t.spec.Cols
}

// cellRight returns the right content boundary of column c.
func (t *Table) cellRight(c int) int {
	return (c+1)*t.spec.MarginX + (c+1)*t.spec.contentWidth()/t.spec.Cols
}

// cellTop returns the top content boundary of row r.
func (t *Table) cellTop(r int) int {
	return (r+1)*t.spec.MarginY + r*t.spec.contentHeight()/t.spec.Rows
}

// cellBottom returns the bottom content boundary of row r.
func (t *Table) cellBottom(r int) int {
	return (r+1)*t.spec.MarginY + (r+1)*t.spec.contentHeight()/t.spec.Rows
}

// span resolves a reference to its covered cell span (inclusive).
// A (row, col) reference inside a merge region resolves to the full region.
func (t *Table) span(ref CellRef) (MergeRegion, error) {
	switch ref.kind {
	case refIndex:
		if ref.index < 0 || ref.index >= len(t.regions) {
			return MergeRegion{}, errors.New(errors.ErrCodeIndexOutOfRange,
				"merge index %d out of range (have %d regions)", ref.index, len(t.regions))
		}
		return t.regions[ref.index], nil
	case refAt:
		if ref.row < 0 || ref.row >= t.spec.Rows || ref.col < 0 || ref.col >= t.spec.Cols {
			return MergeRegion{}, errors.New(errors.ErrCodeIndexOutOfRange,
				"cell (%d,%d) outside %dx%d grid", ref.row, ref.col, t.spec.Rows, t.spec.Cols)
		}
		for _, m := range t.regions {
			if m.contains(ref.row, ref.col) {
				return m, nil
			}
		}
		return MergeRegion{StartRow: ref.row, StartCol: ref.col, EndRow: ref.row, EndCol: ref.col}, nil
	default:
		return MergeRegion{}, errors.New(errors.ErrCodeInternal, "unknown cell reference kind %d", ref.kind)
	}
}

// Span resolves a reference to the inclusive cell span it addresses,
// without converting to pixels. Text previews lay out in grid units.
func (t *Table) Span(ref CellRef) (MergeRegion, error) { return t.span(ref) }

// Rect resolves a cell reference to its pixel rectangle.
// Merged regions span from the start cell's top-left to the end cell's
// bottom-right, absorbing the margins between the spanned cells.
func (t *Table) Rect(ref CellRef) (Rect, error) {
	span, err := t.span(ref)
	if err != nil {
		return Rect{}, err
	}

	r := Rect{
		X0: t.cellLeft(span.StartCol),
		Y0: t.cellTop(span.StartRow),
		X1: t.cellRight(span.EndCol),
		Y1: t.cellBottom(span.EndRow),
	}
	if r.X1 <= r.X0 || r.Y1 <= r.Y0 {
		return Rect{}, errors.New(errors.ErrCodeDegenerateGeometry,
			"cell %s resolves to a non-positive rectangle (%d,%d)-(%d,%d)", ref, r.X0, r.Y0, r.X1, r.Y1)
	}
	return r, nil
}

// Rects resolves every addressable cell of the grid exactly once: each merge
// region first (in declaration order), then every uncovered plain cell in
// row-major order. This is the walking order used for grid borders and the
// debug dump.
func (t *Table) Rects() ([]Rect, error) {
	refs := t.AddressableRefs()
	rects := make([]Rect, 0, len(refs))
	for _, ref := range refs {
		r, err := t.Rect(ref)
		if err != nil {
			return nil, err
		}
		rects = append(rects, r)
	}
	return rects, nil
}

// AddressableRefs returns one reference per addressable unit: merge regions
// in declaration order followed by uncovered cells in row-major order.
func (t *Table) AddressableRefs() []CellRef {
	refs := make([]CellRef, 0, len(t.regions)+t.spec.Rows*t.spec.Cols)
	for i := range t.regions {
		refs = append(refs, Index(i))
	}
	for row := 0; row < t.spec.Rows; row++ {
		for col := 0; col < t.spec.Cols; col++ {
			covered := false
			for _, m := range t.regions {
				if m.contains(row, col) {
					covered = true
					break
				}
			}
			if !covered {
				refs = append(refs, At(row, col))
			}
		}
	}
	return refs
}
