package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/holgern/piltext/pkg/fonts"
	"github.com/holgern/piltext/pkg/geometry"
	"github.com/holgern/piltext/pkg/layout"
)

func testCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return c
}

func TestNewFillsBackground(t *testing.T) {
	c := testCanvas(t, 10, 10, WithBackground("#ff0000"))

	r, g, b, _ := c.Image().At(5, 5).RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 {
		t.Errorf("background pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("zero width should fail")
	}
	if _, err := New(10, -1); err == nil {
		t.Error("negative height should fail")
	}
	if _, err := New(10, 10, WithBackground("no-such-color")); err == nil {
		t.Error("unknown background should fail")
	}
}

func TestDrawChangesPixels(t *testing.T) {
	c := testCanvas(t, 200, 100, WithFonts(fonts.NewManager(fonts.WithDirs(t.TempDir()))))

	instr := layout.DrawInstruction{
		Text:   "Hi",
		Rect:   geometry.Rect{X0: 0, Y0: 0, X1: 200, Y1: 100},
		Anchor: "mm",
		Font:   layout.FontSpec{Size: 48},
		Fill:   "black",
	}
	if err := c.Draw([]layout.DrawInstruction{instr}); err != nil {
		t.Fatalf("Draw error: %v", err)
	}

	img := c.Image()
	dark := 0
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r>>8 < 128 {
				dark++
			}
		}
	}
	if dark == 0 {
		t.Error("drawing text should produce dark pixels")
	}
}

func TestDrawInvalidAnchor(t *testing.T) {
	c := testCanvas(t, 100, 100, WithFonts(fonts.NewManager(fonts.WithDirs(t.TempDir()))))

	err := c.Draw([]layout.DrawInstruction{{
		Text:   "x",
		Rect:   geometry.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
		Anchor: "zz",
		Font:   layout.FontSpec{Size: 12},
	}})
	if err == nil {
		t.Fatal("invalid anchor should fail")
	}
}

func TestFitSizeMonotonic(t *testing.T) {
	c := testCanvas(t, 400, 200, WithFonts(fonts.NewManager(fonts.WithDirs(t.TempDir()))))

	small := geometry.Rect{X0: 0, Y0: 0, X1: 50, Y1: 20}
	large := geometry.Rect{X0: 0, Y0: 0, X1: 300, Y1: 150}

	sizeSmall, err := c.FitSize("Hello", small, layout.FontSpec{})
	if err != nil {
		t.Fatalf("FitSize(small) error: %v", err)
	}
	sizeLarge, err := c.FitSize("Hello", large, layout.FontSpec{})
	if err != nil {
		t.Fatalf("FitSize(large) error: %v", err)
	}

	if sizeSmall >= sizeLarge {
		t.Errorf("fit sizes: small box %v, large box %v; want small < large", sizeSmall, sizeLarge)
	}
	if sizeSmall < 1 {
		t.Errorf("fit size %v below minimum", sizeSmall)
	}

	// Fitted text actually fits.
	face, err := c.fonts.Face("", "", sizeLarge)
	if err != nil {
		t.Fatalf("Face error: %v", err)
	}
	ext := Measure("Hello", face)
	if ext.Width > float64(large.Width()) || ext.Height > float64(large.Height()) {
		t.Errorf("extent %+v exceeds rect %dx%d", ext, large.Width(), large.Height())
	}
}

func TestDrawBorders(t *testing.T) {
	table, err := geometry.NewTable(geometry.GridSpec{
		Rows: 2, Cols: 2, MarginX: 5, MarginY: 5, Width: 100, Height: 100,
	}, nil)
	if err != nil {
		t.Fatalf("NewTable error: %v", err)
	}

	c := testCanvas(t, 100, 100)
	if err := c.DrawBorders(table, "black"); err != nil {
		t.Fatalf("DrawBorders error: %v", err)
	}

	img := c.Image()
	if r, _, _, _ := img.At(5, 20).RGBA(); r>>8 > 128 {
		t.Error("expected a dark border pixel on the first cell's left edge")
	}
}

func TestEncodePNG(t *testing.T) {
	c := testCanvas(t, 20, 20)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "white", want: color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{in: "Black", want: color.RGBA{0x00, 0x00, 0x00, 0xff}},
		{in: "#4caf50", want: color.RGBA{0x4c, 0xaf, 0x50, 0xff}},
		{in: "#f00", want: color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "mauve-ish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor = %v, want %v", got, tt.want)
			}
		})
	}

	// Empty means unset and falls back to black.
	if got, err := ParseColor(""); err != nil || got != color.Black {
		t.Errorf("ParseColor(\"\") = %v, %v; want black, nil", got, err)
	}
}
