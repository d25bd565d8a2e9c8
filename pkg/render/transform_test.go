package render

import (
	"image"
	"image/color"
	"testing"
)

// asymmetric returns a 2x1 image with a red left pixel and blue right pixel.
func asymmetric() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0xff, 0, 0, 0xff})
	img.Set(1, 0, color.RGBA{0, 0, 0xff, 0xff})
	return img
}

func red(c color.Color) bool {
	r, _, b, _ := c.RGBA()
	return r > b
}

func TestTransformZero(t *testing.T) {
	tr := Transform{}
	if !tr.IsZero() {
		t.Error("empty transform should be zero")
	}

	img := asymmetric()
	out, err := tr.Apply(img)
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !red(out.At(0, 0)) {
		t.Error("zero transform must not change the image")
	}
}

func TestTransformMirror(t *testing.T) {
	out, err := Transform{Mirror: true}.Apply(asymmetric())
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if red(out.At(0, 0)) {
		t.Error("mirror should move the red pixel to the right")
	}
	if !red(out.At(1, 0)) {
		t.Error("mirror should leave red on the right")
	}
}

func TestTransformRotate(t *testing.T) {
	out, err := Transform{Orientation: 90}.Apply(asymmetric())
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	b := out.Bounds()
	if b.Dx() != 1 || b.Dy() != 2 {
		t.Fatalf("rotated bounds = %dx%d, want 1x2", b.Dx(), b.Dy())
	}
}

func TestTransformInvert(t *testing.T) {
	out, err := Transform{Inverted: true}.Apply(asymmetric())
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	r, g, b, _ := out.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0xff || b>>8 != 0xff {
		t.Errorf("inverted red = (%d,%d,%d), want cyan", r>>8, g>>8, b>>8)
	}
}

func TestTransformRejectsOddOrientation(t *testing.T) {
	if _, err := (Transform{Orientation: 45}).Apply(asymmetric()); err == nil {
		t.Error("orientation 45 should fail")
	}
}
