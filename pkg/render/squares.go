package render

import (
	"image"
	"math"
)

// Squares renders a percentage as a grid of small squares, filled left to
// right, top to bottom. The square straddling the percentage boundary is
// partially filled.
type Squares struct {
	Percentage  float64 // 0..1, clamped
	MaxSquares  int
	Size        int // target edge length; actual size derives from the grid
	Rows        int // 0 = derived
	Columns     int // 0 = derived
	Gap         int
	Background  string
	FillColor   string
	EmptyColor  string
	BorderColor string
	BorderWidth int
	ShowPartial bool
}

// NewSquares returns a 100-square visualization with default styling.
func NewSquares(percentage float64) Squares {
	return Squares{
		Percentage:  percentage,
		MaxSquares:  100,
		Size:        200,
		Gap:         2,
		Background:  "white",
		FillColor:   "#4caf50",
		EmptyColor:  "#e0e0e0",
		BorderColor: "#cccccc",
		BorderWidth: 1,
		ShowPartial: true,
	}
}

// grid resolves the row/column counts, deriving missing ones so the grid is
// as square as possible.
func (s Squares) grid() (rows, cols int) {
	rows, cols = s.Rows, s.Columns
	switch {
	case rows > 0 && cols > 0:
	case rows > 0:
		cols = (s.MaxSquares + rows - 1) / rows
	case cols > 0:
		rows = (s.MaxSquares + cols - 1) / cols
	default:
		cols = int(math.Ceil(math.Sqrt(float64(s.MaxSquares))))
		rows = (s.MaxSquares + cols - 1) / cols
	}
	return rows, cols
}

// Render draws the squares and returns the image.
func (s Squares) Render() (image.Image, error) {
	if s.MaxSquares <= 0 {
		s.MaxSquares = 100
	}
	if s.Size <= 0 {
		s.Size = 200
	}
	pct := clamp01(s.Percentage)
	rows, cols := s.grid()

	edge := (s.Size - (cols+1)*s.Gap) / cols
	width := edge*cols + (cols+1)*s.Gap
	height := edge*rows + (rows+1)*s.Gap

	c, err := New(width, height, WithBackground(s.Background))
	if err != nil {
		return nil, err
	}

	fill, err := ParseColor(s.FillColor)
	if err != nil {
		return nil, err
	}
	empty, err := ParseColor(s.EmptyColor)
	if err != nil {
		return nil, err
	}
	border, err := ParseColor(s.BorderColor)
	if err != nil {
		return nil, err
	}

	filled := pct * float64(s.MaxSquares)
	full := math.Floor(filled)
	partial := filled - full

	dc := c.dc
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			index := row*cols + col
			if index >= s.MaxSquares {
				break
			}

			x := float64(s.Gap + col*(edge+s.Gap))
			y := float64(s.Gap + row*(edge+s.Gap))

			switch {
			case float64(index) < full:
				dc.SetColor(fill)
				dc.DrawRectangle(x, y, float64(edge), float64(edge))
				dc.Fill()
			case float64(index) == full && partial > 0 && s.ShowPartial:
				dc.SetColor(empty)
				dc.DrawRectangle(x, y, float64(edge), float64(edge))
				dc.Fill()
				dc.SetColor(fill)
				dc.DrawRectangle(x, y, float64(edge)*partial, float64(edge))
				dc.Fill()
			default:
				dc.SetColor(empty)
				dc.DrawRectangle(x, y, float64(edge), float64(edge))
				dc.Fill()
			}

			if s.BorderWidth > 0 {
				dc.SetColor(border)
				dc.SetLineWidth(float64(s.BorderWidth))
				dc.DrawRectangle(x, y, float64(edge), float64(edge))
				dc.Stroke()
			}
		}
	}

	return c.Image(), nil
}
