// Package pipeline runs the complete config → fonts → layout → render
// pipeline shared by the CLI commands. Centralizing it keeps `render` and
// `preview` behavior identical.
//
// The pipeline consists of four stages:
//
//  1. Fonts: build the font manager and run configured downloads
//  2. Layout: compile the grid and resolve draw instructions
//  3. Render: rasterize the instructions onto the canvas
//  4. Transform: apply mirror / rotation / inversion
//
// Usage:
//
//	runner := pipeline.NewRunner(fileCache, logger)
//	result, err := runner.Execute(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png.Encode(w, result.Image)
package pipeline

import (
	"context"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/holgern/piltext/pkg/cache"
	"github.com/holgern/piltext/pkg/config"
	"github.com/holgern/piltext/pkg/fonts"
	"github.com/holgern/piltext/pkg/geometry"
	"github.com/holgern/piltext/pkg/layout"
	"github.com/holgern/piltext/pkg/observability"
	"github.com/holgern/piltext/pkg/render"
)

// Stats carries per-stage timings.
type Stats struct {
	FontTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Result is the pipeline output.
type Result struct {
	Image        image.Image
	Table        *geometry.Table
	Entries      []layout.TextEntry
	Instructions []layout.DrawInstruction
	Stats        Stats
}

// Runner executes the pipeline. It is stateless apart from the cache and
// logger; multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables download caching, a nil
// logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the full pipeline for a config.
func (r *Runner) Execute(ctx context.Context, cfg *config.Config) (*Result, error) {
	result := &Result{}

	fontStart := time.Now()
	fm, err := r.Fonts(ctx, cfg)
	if err != nil {
		return nil, err
	}
	result.Stats.FontTime = time.Since(fontStart)

	entryCount := 0
	if cfg.Grid != nil {
		entryCount = len(cfg.Grid.Texts)
	}
	observability.Render().OnLayoutStart(ctx, entryCount)

	layoutStart := time.Now()
	table, entries, instrs, err := r.Layout(cfg)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Render().OnLayoutComplete(ctx, len(entries), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, err
	}
	result.Table = table
	result.Entries = entries
	result.Instructions = instrs

	r.Logger.Debug("layout resolved",
		"entries", len(entries),
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	img, err := r.Render(ctx, cfg, fm, table, instrs)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnDrawComplete(ctx, cfg.Image.Width, cfg.Image.Height, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Image = img

	r.Logger.Info("rendered image",
		"width", cfg.Image.Width,
		"height", cfg.Image.Height,
		"instructions", len(instrs),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fonts builds the configured font manager and runs the configured
// downloads. Download failures abort: rendering would silently substitute
// the embedded face otherwise.
func (r *Runner) Fonts(ctx context.Context, cfg *config.Config) (*fonts.Manager, error) {
	opts := []fonts.Option{
		fonts.WithDefaultFont(cfg.Fonts.DefaultName),
		fonts.WithCache(r.Cache),
	}
	if len(cfg.Fonts.Directories) > 0 {
		opts = append(opts, fonts.WithDirs(cfg.Fonts.Directories...))
	}
	fm := fonts.NewManager(opts...)

	for _, d := range cfg.Fonts.Downloads {
		start := time.Now()
		var (
			path string
			err  error
		)
		if d.IsGoogle() {
			path, err = fm.DownloadGoogleFont(ctx, d.Part1, d.Part2, d.Name)
		} else {
			path, err = fm.DownloadURL(ctx, d.URL)
		}
		observability.Font().OnDownload(ctx, d.URL, 0, time.Since(start), err)
		if err != nil {
			return nil, err
		}
		r.Logger.Debug("font available", "path", path)
	}

	return fm, nil
}

// Layout compiles the config's grid into a table and draw instructions.
func (r *Runner) Layout(cfg *config.Config) (*geometry.Table, []layout.TextEntry, []layout.DrawInstruction, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, nil, nil, err
	}
	entries, err := cfg.Entries()
	if err != nil {
		return nil, nil, nil, err
	}

	instrs, err := layout.Build(table, layout.Style{}, cfg.GridStyle(), entries)
	if err != nil {
		return nil, nil, nil, err
	}
	return table, entries, instrs, nil
}

// Render draws the instructions and applies the configured transformations.
func (r *Runner) Render(ctx context.Context, cfg *config.Config, fm *fonts.Manager, table *geometry.Table, instrs []layout.DrawInstruction) (image.Image, error) {
	observability.Render().OnDrawStart(ctx, cfg.Image.Width, cfg.Image.Height)

	canvas, err := render.New(cfg.Image.Width, cfg.Image.Height,
		render.WithBackground(cfg.Image.Background),
		render.WithFonts(fm))
	if err != nil {
		return nil, err
	}

	if err := canvas.Draw(instrs); err != nil {
		return nil, err
	}
	if cfg.Grid != nil && cfg.Grid.Borders {
		if err := canvas.DrawBorders(table, cfg.Grid.BorderColor); err != nil {
			return nil, err
		}
	}

	tr := render.Transform{
		Mirror:      cfg.Image.Mirror,
		Orientation: cfg.Image.Orientation,
		Inverted:    cfg.Image.Inverted,
	}
	return tr.Apply(canvas.Image())
}
