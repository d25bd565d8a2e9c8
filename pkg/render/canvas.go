// Package render rasterizes draw instructions onto an image canvas.
//
// A Canvas wraps a gg drawing context and a font manager. It measures text,
// resolves anchor offsets, sizes text to fit its cell when no explicit size
// is given, and encodes the result as PNG. Gauge and percentage-square
// widgets as well as post-draw transformations live in this package too.
package render

import (
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/holgern/piltext/pkg/errors"
	"github.com/holgern/piltext/pkg/fonts"
	"github.com/holgern/piltext/pkg/geometry"
	"github.com/holgern/piltext/pkg/layout"
)

// maxFitSize bounds the fit-to-box search. Nothing legible on an e-paper
// canvas needs more.
const maxFitSize = 512

// Canvas is a drawing surface for text instructions.
type Canvas struct {
	dc     *gg.Context
	fonts  *fonts.Manager
	width  int
	height int
}

// Option configures a Canvas.
type Option func(*canvasConfig)

type canvasConfig struct {
	background string
	fonts      *fonts.Manager
}

// WithBackground sets the canvas background color (name or hex).
// The default is white.
func WithBackground(c string) Option {
	return func(cfg *canvasConfig) {
		if c != "" {
			cfg.background = c
		}
	}
}

// WithFonts sets the font manager used to resolve instruction fonts.
func WithFonts(m *fonts.Manager) Option {
	return func(cfg *canvasConfig) { cfg.fonts = m }
}

// New creates a canvas of the given pixel dimensions, filled with the
// background color.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeDegenerateGeometry, "canvas dimensions %dx%d must be positive", width, height)
	}

	cfg := canvasConfig{background: "white"}
	for _, opt := range opts {
		opt(&cfg)
	}

	bg, err := ParseColor(cfg.background)
	if err != nil {
		return nil, err
	}
	if cfg.fonts == nil {
		cfg.fonts = fonts.NewManager()
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()

	return &Canvas{dc: dc, fonts: cfg.fonts, width: width, height: height}, nil
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Measure returns the extent of text rendered with the given face.
func Measure(text string, face font.Face) layout.TextExtent {
	m := face.Metrics()
	adv := font.MeasureString(face, text)
	return layout.TextExtent{
		Width:   float64(adv.Ceil()),
		Height:  float64((m.Ascent + m.Descent).Ceil()),
		Ascent:  float64(m.Ascent.Ceil()),
		Descent: float64(m.Descent.Ceil()),
	}
}

// FitSize returns the largest font size whose rendered text still fits the
// rect, searching integer sizes. The result is at least 1 even when the text
// overflows the rect at size 1.
func (c *Canvas) FitSize(text string, rect geometry.Rect, spec layout.FontSpec) (float64, error) {
	fits := func(size int) (bool, error) {
		face, err := c.fonts.Face(spec.Name, spec.Variation, float64(size))
		if err != nil {
			return false, err
		}
		ext := Measure(text, face)
		return ext.Width <= float64(rect.Width()) && ext.Height <= float64(rect.Height()), nil
	}

	// Invariant: lo fits (or is the floor), sizes above hi do not.
	lo, hi := 1, maxFitSize
	for lo < hi {
		mid := (lo + hi + 1) / 2
		ok, err := fits(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return float64(lo), nil
}

// Draw rasterizes the instructions in order. A zero font size requests
// fit-to-box sizing. Returns the first error encountered; earlier
// instructions stay drawn.
func (c *Canvas) Draw(instrs []layout.DrawInstruction) error {
	for i, in := range instrs {
		if err := c.drawOne(in); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "instruction %d (%q)", i, in.Text)
		}
	}
	return nil
}

func (c *Canvas) drawOne(in layout.DrawInstruction) error {
	size := in.Font.Size
	if size == 0 {
		fitted, err := c.FitSize(in.Text, in.Rect, in.Font)
		if err != nil {
			return err
		}
		size = fitted
	}

	face, err := c.fonts.Face(in.Font.Name, in.Font.Variation, size)
	if err != nil {
		return err
	}

	ext := Measure(in.Text, face)
	at, err := layout.ResolveOffset(in.Rect, ext, in.Anchor)
	if err != nil {
		return err
	}

	fill, err := ParseColor(in.Fill)
	if err != nil {
		return err
	}

	c.dc.SetFontFace(face)
	c.dc.SetColor(fill)
	// gg draws strings at the baseline.
	c.dc.DrawString(in.Text, at.X, at.Y+ext.Ascent)
	return nil
}

// DrawBorders outlines every addressable cell of the table, merged regions
// as single rectangles. Useful for layout debugging.
func (c *Canvas) DrawBorders(table *geometry.Table, colorName string) error {
	col, err := ParseColor(colorName)
	if err != nil {
		return err
	}

	rects, err := table.Rects()
	if err != nil {
		return err
	}

	c.dc.SetColor(col)
	c.dc.SetLineWidth(1)
	for _, r := range rects {
		c.dc.DrawRectangle(float64(r.X0), float64(r.Y0), float64(r.Width()), float64(r.Height()))
		c.dc.Stroke()
	}
	return nil
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

// clamp01 bounds a fraction to [0, 1].
func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }
