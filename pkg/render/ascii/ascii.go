// Package ascii converts rendered images into terminal previews: brightness
// is mapped onto a character ramp, optionally colored with the 16-color ANSI
// palette via lipgloss.
package ascii

import (
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
)

// DefaultRamp orders characters from darkest to brightest pixel: black maps
// to a space, white to '@'.
const DefaultRamp = " .:-=+*#%@"

// SimpleRamp is a coarse three-step ramp for low-fidelity terminals.
const SimpleRamp = " .#"

// DefaultWidthRatio compensates for terminal cells being taller than wide.
const DefaultWidthRatio = 2.2

// ansiPalette holds the standard 16 ANSI foreground colors as linear RGB.
var ansiPalette = []struct {
	rgb   [3]float64
	color lipgloss.Color
}{
	{[3]float64{0.0, 0.0, 0.0}, lipgloss.Color("0")},
	{[3]float64{0.5, 0.0, 0.0}, lipgloss.Color("1")},
	{[3]float64{0.0, 0.5, 0.0}, lipgloss.Color("2")},
	{[3]float64{0.5, 0.5, 0.0}, lipgloss.Color("3")},
	{[3]float64{0.0, 0.0, 0.5}, lipgloss.Color("4")},
	{[3]float64{0.5, 0.0, 0.5}, lipgloss.Color("5")},
	{[3]float64{0.0, 0.5, 0.5}, lipgloss.Color("6")},
	{[3]float64{0.75, 0.75, 0.75}, lipgloss.Color("7")},
	{[3]float64{0.5, 0.5, 0.5}, lipgloss.Color("8")},
	{[3]float64{1.0, 0.0, 0.0}, lipgloss.Color("9")},
	{[3]float64{0.0, 1.0, 0.0}, lipgloss.Color("10")},
	{[3]float64{1.0, 1.0, 0.0}, lipgloss.Color("11")},
	{[3]float64{0.0, 0.0, 1.0}, lipgloss.Color("12")},
	{[3]float64{1.0, 0.0, 1.0}, lipgloss.Color("13")},
	{[3]float64{0.0, 1.0, 1.0}, lipgloss.Color("14")},
	{[3]float64{1.0, 1.0, 1.0}, lipgloss.Color("15")},
}

// Options control the conversion.
type Options struct {
	Columns    int     // output width in characters; default 80
	WidthRatio float64 // character aspect correction; default 2.2
	Ramp       string  // dark-to-bright characters; default DefaultRamp
	Monochrome bool    // plain characters without color codes
}

func (o Options) withDefaults() Options {
	if o.Columns <= 0 {
		o.Columns = 80
	}
	if o.WidthRatio <= 0 {
		o.WidthRatio = DefaultWidthRatio
	}
	if o.Ramp == "" {
		o.Ramp = DefaultRamp
	}
	return o
}

// Convert renders img as ASCII art, one line per character row.
func Convert(img image.Image, opts Options) string {
	opts = opts.withDefaults()
	ramp := []rune(opts.Ramp)

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	outW := opts.Columns
	outH := int(float64(srcH) * float64(outW) / (float64(srcW) * opts.WidthRatio))
	if outH < 1 {
		outH = 1
	}

	small := imaging.Resize(img, outW, outH, imaging.Box)

	var b strings.Builder
	for y := 0; y < outH; y++ {
		var line strings.Builder
		var runColor lipgloss.Color
		var run strings.Builder

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if opts.Monochrome {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for x := 0; x < outW; x++ {
			r, g, bl, _ := small.At(x, y).RGBA()
			rf, gf, bf := float64(r)/0xffff, float64(g)/0xffff, float64(bl)/0xffff

			brightness := 0.299*rf + 0.587*gf + 0.114*bf
			// Scale by len(ramp) so pure white reaches the last character
			// despite the luminance weights summing to just under 1.
			idx := int(brightness * float64(len(ramp)))
			if idx >= len(ramp) {
				idx = len(ramp) - 1
			}
			ch := ramp[idx]

			if opts.Monochrome {
				run.WriteRune(ch)
				continue
			}

			c := closestANSI(rf, gf, bf, brightness)
			if c != runColor {
				flush()
				runColor = c
			}
			run.WriteRune(ch)
		}
		flush()

		b.WriteString(strings.TrimRight(line.String(), " "))
		if y < outH-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// closestANSI picks the palette color nearest to the pixel in linearized
// RGB, with palette entries scaled by the pixel's brightness so dark pixels
// prefer dark colors.
func closestANSI(r, g, b, brightness float64) lipgloss.Color {
	lr := math.Pow(r, 2.2)
	lg := math.Pow(g, 2.2)
	lb := math.Pow(b, 2.2)

	best := 7 // light gray fallback
	bestDist := math.Inf(1)
	for i, p := range ansiPalette {
		dr := p.rgb[0]*brightness - lr
		dg := p.rgb[1]*brightness - lg
		db := p.rgb[2]*brightness - lb
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return ansiPalette[best].color
}
