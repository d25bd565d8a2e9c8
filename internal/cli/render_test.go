package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/holgern/piltext/pkg/render/ascii"
)

const testConfig = `
[image]
width = 400
height = 200

[fonts]

[grid]
rows = 2
columns = 2
margin_x = 5
margin_y = 5
merge = [[[0, 0], [0, 1]]]

[[grid.texts]]
text = "Header"
anchor = "mm"

[[grid.texts]]
start = [1, 0]
text = "left"
size = 20
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommandWritesImage(t *testing.T) {
	cfgPath := writeTestConfig(t)
	outPath := filepath.Join(t.TempDir(), "out.png")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", cfgPath, "--output", outPath, "--no-cache"})

	if err := root.Execute(); err != nil {
		t.Fatalf("render command error: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output image not written: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("output is not a PNG file")
	}
}

func TestRenderCommandMissingConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", "/does/not/exist.toml"})

	if err := root.Execute(); err == nil {
		t.Error("render with missing config should fail")
	}
}

func TestRenderCommandBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[image]\nwidth = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", path, "--no-cache"})

	// No [grid] section means there is nothing to render.
	if err := root.Execute(); err == nil {
		t.Error("render without a grid section should fail")
	}
}

func TestAsciiRamp(t *testing.T) {
	if got := asciiRamp(true); got != ascii.SimpleRamp {
		t.Errorf("asciiRamp(true) = %q, want %q", got, ascii.SimpleRamp)
	}
	if got := asciiRamp(false); got != ascii.DefaultRamp {
		t.Errorf("asciiRamp(false) = %q, want %q", got, ascii.DefaultRamp)
	}
}
