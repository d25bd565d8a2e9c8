package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/holgern/piltext/pkg/errors"
)

// namedColors covers the color names accepted in config files alongside
// #RGB / #RRGGBB hex values.
var namedColors = map[string]color.RGBA{
	"black":   {0x00, 0x00, 0x00, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
	"cyan":    {0x00, 0xff, 0xff, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
}

// ParseColor converts a color name or hex string into a color.
// The empty string means "unset" and maps to black, the drawing default.
func ParseColor(s string) (color.Color, error) {
	if s == "" {
		return color.Black, nil
	}

	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}

	return nil, errors.New(errors.ErrCodeInvalidColor, "unknown color %q (use a name or #RRGGBB)", s)
}

func parseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")

	var r, g, b uint64
	var err error
	switch len(hex) {
	case 3:
		r, g, b, err = parseHexChannels(hex, 1)
		r, g, b = r*17, g*17, b*17
	case 6:
		r, g, b, err = parseHexChannels(hex, 2)
	default:
		return nil, errors.New(errors.ErrCodeInvalidColor, "hex color %q must be #RGB or #RRGGBB", s)
	}
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidColor, "hex color %q has invalid digits", s)
	}

	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}, nil
}

func parseHexChannels(hex string, width int) (r, g, b uint64, err error) {
	if r, err = strconv.ParseUint(hex[0:width], 16, 8); err != nil {
		return
	}
	if g, err = strconv.ParseUint(hex[width:2*width], 16, 8); err != nil {
		return
	}
	b, err = strconv.ParseUint(hex[2*width:3*width], 16, 8)
	return
}
