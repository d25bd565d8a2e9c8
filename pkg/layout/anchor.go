package layout

import (
	"github.com/holgern/piltext/pkg/errors"
	"github.com/holgern/piltext/pkg/geometry"
)

// DefaultAnchor is used when neither the entry, the grid, nor the global
// defaults specify an anchor.
const DefaultAnchor = "lt"

// TextExtent is the measured size of a piece of text in a given font.
// Ascent and Descent come from the font's vertical metrics and are required
// for the baseline ("s") and descender ("d") anchors.
type TextExtent struct {
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
}

// Point is a pixel position on the canvas.
type Point struct {
	X, Y float64
}

// ValidateAnchor checks that anchor is a recognized two-character code:
// horizontal l|m|r followed by vertical t|m|b|s|d.
func ValidateAnchor(anchor string) error {
	if len(anchor) != 2 {
		return errors.New(errors.ErrCodeInvalidAnchor, "anchor %q must be two characters", anchor)
	}
	switch anchor[0] {
	case 'l', 'm', 'r':
	default:
		return errors.New(errors.ErrCodeInvalidAnchor, "anchor %q has unknown horizontal alignment %q", anchor, string(anchor[0]))
	}
	switch anchor[1] {
	case 't', 'm', 'b', 's', 'd':
	default:
		return errors.New(errors.ErrCodeInvalidAnchor, "anchor %q has unknown vertical alignment %q", anchor, string(anchor[1]))
	}
	return nil
}

// ResolveOffset maps an anchor code, a target rectangle and a measured text
// extent to the top-left position where the text must be drawn.
//
// The first anchor character selects the horizontal alignment within the
// rectangle (l=left, m=middle, r=right), the second the vertical alignment
// (t=top, m=middle, b=bottom, s=baseline on the bottom edge, d=descender on
// the bottom edge). The function is pure: identical inputs always produce
// identical offsets.
func ResolveOffset(rect geometry.Rect, extent TextExtent, anchor string) (Point, error) {
	if err := ValidateAnchor(anchor); err != nil {
		return Point{}, err
	}

	var p Point

	switch anchor[0] {
	case 'l':
		p.X = float64(rect.X0)
	case 'm':
		p.X = float64(rect.X0) + (float64(rect.Width())-extent.Width)/2
	case 'r':
		p.X = float64(rect.X1) - extent.Width
	}

	switch anchor[1] {
	case 't':
		p.Y = float64(rect.Y0)
	case 'm':
		p.Y = float64(rect.Y0) + (float64(rect.Height())-extent.Height)/2
	case 'b':
		p.Y = float64(rect.Y1) - extent.Height
	case 's':
		// Baseline sits on the rectangle's bottom edge.
		p.Y = float64(rect.Y1) - extent.Ascent
	case 'd':
		// Descender line sits on the rectangle's bottom edge.
		p.Y = float64(rect.Y1) - extent.Ascent - extent.Descent
	}

	return p, nil
}
