package render

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"

	"github.com/holgern/piltext/pkg/fonts"
)

// Dial renders a percentage as a gauge: a track arc, a filled value arc,
// optional ticks with labels, a needle, and the value in the center.
type Dial struct {
	Percentage float64 // 0..1, clamped
	Size       int     // square canvas edge in pixels
	Radius     int     // 0 = derived from Size and Thickness
	Thickness  int
	Background string
	TrackColor string
	FillColor  string
	FontName   string
	FontSize   float64 // 0 = derived from Size
	StartAngle float64 // degrees, 0 = 3 o'clock, clockwise
	EndAngle   float64
	ShowNeedle bool
	ShowTicks  bool
	ShowValue  bool
}

// NewDial returns a dial with the conventional -135..135 sweep and
// default styling.
func NewDial(percentage float64) Dial {
	return Dial{
		Percentage: percentage,
		Size:       200,
		Thickness:  20,
		Background: "white",
		TrackColor: "#e0e0e0",
		FillColor:  "#4caf50",
		StartAngle: -135,
		EndAngle:   135,
		ShowNeedle: true,
		ShowTicks:  true,
		ShowValue:  true,
	}
}

// Render draws the dial and returns the image.
func (d Dial) Render(fm *fonts.Manager) (image.Image, error) {
	if d.Size <= 0 {
		d.Size = 200
	}
	pct := clamp01(d.Percentage)

	c, err := New(d.Size, d.Size, WithBackground(d.Background), WithFonts(fm))
	if err != nil {
		return nil, err
	}
	dc := c.dc

	margin := d.Thickness/2 + 5
	cx := float64(d.Size) / 2
	cy := float64(d.Size) / 2
	radius := float64(d.Radius)
	if d.Radius == 0 {
		radius = float64(d.Size-2*margin) / 2
	}

	start := gg.Radians(d.StartAngle)
	end := gg.Radians(d.EndAngle)
	sweep := end - start

	track, err := ParseColor(d.TrackColor)
	if err != nil {
		return nil, err
	}
	fill, err := ParseColor(d.FillColor)
	if err != nil {
		return nil, err
	}

	dc.SetLineWidth(float64(d.Thickness))
	dc.SetColor(track)
	dc.DrawArc(cx, cy, radius, start, end)
	dc.Stroke()

	if pct > 0 {
		dc.SetColor(fill)
		dc.DrawArc(cx, cy, radius, start, start+pct*sweep)
		dc.Stroke()
	}

	if d.ShowTicks {
		if err := d.drawTicks(c, cx, cy, radius, start, sweep); err != nil {
			return nil, err
		}
	}
	if d.ShowNeedle {
		d.drawNeedle(dc, cx, cy, radius, start+pct*sweep)
	}
	if d.ShowValue {
		size := d.FontSize
		if size == 0 {
			size = math.Max(10, float64(d.Size)/10)
		}
		face, err := fm.Face(d.FontName, "", size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(namedColors["black"])
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", int(pct*100)), cx, cy, 0.5, 0.5)
	}

	return c.Image(), nil
}

// drawTicks draws 5 labeled major ticks with 3 minor ticks between each pair.
func (d Dial) drawTicks(c *Canvas, cx, cy, radius, start, sweep float64) error {
	const (
		majorTicks    = 5
		minorPerMajor = 4
	)
	dc := c.dc

	size := d.FontSize
	if size == 0 {
		size = math.Max(8, float64(d.Size)/20)
	}
	face, err := c.fonts.Face(d.FontName, "", size)
	if err != nil {
		return err
	}

	dc.SetLineWidth(2)
	dc.SetColor(namedColors["black"])
	for i := 0; i < majorTicks; i++ {
		frac := float64(i) / (majorTicks - 1)
		angle := start + frac*sweep
		sin, cos := math.Sin(angle), math.Cos(angle)

		dc.DrawLine(cx+(radius+5)*cos, cy+(radius+5)*sin, cx+(radius-10)*cos, cy+(radius-10)*sin)
		dc.Stroke()

		dc.SetFontFace(face)
		dc.DrawStringAnchored(fmt.Sprintf("%d", int(frac*100)), cx+(radius+20)*cos, cy+(radius+20)*sin, 0.5, 0.5)
	}

	dc.SetLineWidth(1)
	dc.SetColor(namedColors["gray"])
	total := (majorTicks - 1) * minorPerMajor
	for i := 1; i < total; i++ {
		if i%minorPerMajor == 0 {
			continue
		}
		angle := start + float64(i)/float64(total)*sweep
		sin, cos := math.Sin(angle), math.Cos(angle)
		dc.DrawLine(cx+(radius+2)*cos, cy+(radius+2)*sin, cx+(radius-5)*cos, cy+(radius-5)*sin)
		dc.Stroke()
	}
	return nil
}

func (d Dial) drawNeedle(dc *gg.Context, cx, cy, radius, angle float64) {
	length := radius - float64(d.Thickness)/2 - 10
	dc.SetLineWidth(3)
	dc.SetColor(namedColors["red"])
	dc.DrawLine(cx, cy, cx+length*math.Cos(angle), cy+length*math.Sin(angle))
	dc.Stroke()

	pivot := math.Max(4, float64(d.Size)/30)
	dc.SetColor(namedColors["black"])
	dc.DrawCircle(cx, cy, pivot)
	dc.Fill()
}
