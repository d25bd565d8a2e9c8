package render

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/holgern/piltext/pkg/errors"
)

// Transform describes the post-draw adjustments applied to a finished image,
// in the order rotate, mirror, invert. E-paper panels are often mounted
// rotated or mirrored, so the drawing stays in logical orientation and the
// transform compensates at the end.
type Transform struct {
	Mirror      bool
	Orientation int // counter-clockwise degrees, 90° steps
	Inverted    bool
}

// IsZero reports whether the transform changes nothing.
func (t Transform) IsZero() bool {
	return !t.Mirror && t.Orientation == 0 && !t.Inverted
}

// Apply returns the transformed image. Orientation must be a multiple of
// 90 in [0, 360).
func (t Transform) Apply(img image.Image) (image.Image, error) {
	switch t.Orientation {
	case 0:
	case 90:
		img = imaging.Rotate90(img)
	case 180:
		img = imaging.Rotate180(img)
	case 270:
		img = imaging.Rotate270(img)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "orientation %d is not a 90° step", t.Orientation)
	}

	if t.Mirror {
		img = imaging.FlipH(img)
	}
	if t.Inverted {
		img = imaging.Invert(img)
	}
	return img, nil
}
