package pipeline

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/holgern/piltext/pkg/config"
	"github.com/holgern/piltext/pkg/geometry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(`
[image]
width = 400
height = 200

[fonts]
directories = ["` + t.TempDir() + `"]

[grid]
rows = 2
columns = 2
margin_x = 5
margin_y = 5
merge = [[[0, 0], [0, 1]]]

[[grid.texts]]
text = "Header"
anchor = "mm"
size = 20

[[grid.texts]]
start = [1, 0]
text = "Value"
anchor = "lt"
size = 16
`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return cfg
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, log.Default())

	result, err := runner.Execute(context.Background(), testConfig(t))
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if b := result.Image.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
	if len(result.Instructions) != 2 {
		t.Errorf("instructions = %d, want 2", len(result.Instructions))
	}

	// The merged header spans the full content width.
	r, err := result.Table.Rect(geometry.Index(0))
	if err != nil {
		t.Fatalf("Rect error: %v", err)
	}
	if r.X0 != 5 || r.X1 != 395 {
		t.Errorf("header rect spans %d..%d, want 5..395", r.X0, r.X1)
	}
}

func TestExecuteRotatedOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Image.Orientation = 90

	runner := NewRunner(nil, log.Default())
	result, err := runner.Execute(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if b := result.Image.Bounds(); b.Dx() != 200 || b.Dy() != 400 {
		t.Errorf("rotated image = %dx%d, want 200x400", b.Dx(), b.Dy())
	}
}

func TestExecuteRejectsInvalidGrid(t *testing.T) {
	cfg := testConfig(t)
	cfg.Grid.Merge = append(cfg.Grid.Merge, [][]int{{0, 1}, {1, 1}}) // overlaps the header

	runner := NewRunner(nil, log.Default())
	if _, err := runner.Execute(context.Background(), cfg); err == nil {
		t.Error("overlapping merges should fail")
	}
}

func TestExecuteWithoutGrid(t *testing.T) {
	cfg, err := config.Parse([]byte("[image]\nwidth = 100\nheight = 100\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	runner := NewRunner(nil, log.Default())
	if _, err := runner.Execute(context.Background(), cfg); err == nil {
		t.Error("config without [grid] should fail")
	}
}

func TestLayoutFitToBoxDefault(t *testing.T) {
	cfg := testConfig(t)
	cfg.Grid.Texts[0].Size = 0 // request fit-to-box

	runner := NewRunner(nil, log.Default())
	_, _, instrs, err := runner.Layout(cfg)
	if err != nil {
		t.Fatalf("Layout error: %v", err)
	}
	if instrs[0].Font.Size != 0 {
		t.Errorf("instruction size = %v, want 0 (fit-to-box)", instrs[0].Font.Size)
	}

	// The full pipeline still renders it.
	if _, err := runner.Execute(context.Background(), cfg); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
}
