// Package config loads the TOML files that describe a piltext rendering:
// image dimensions and transformations, font sources and downloads, and the
// grid with its merges and text entries. Loading only decodes and applies
// defaults; compiling into geometry and layout types validates.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/holgern/piltext/pkg/errors"
	"github.com/holgern/piltext/pkg/geometry"
	"github.com/holgern/piltext/pkg/layout"
)

// Config mirrors the TOML file structure.
type Config struct {
	Image ImageConfig `toml:"image"`
	Fonts FontsConfig `toml:"fonts"`
	Grid  *GridConfig `toml:"grid"`
}

// ImageConfig is the [image] section.
type ImageConfig struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Background  string `toml:"background"`
	Mirror      bool   `toml:"mirror"`
	Orientation int    `toml:"orientation"`
	Inverted    bool   `toml:"inverted"`
}

// FontsConfig is the [fonts] section.
type FontsConfig struct {
	Directories []string         `toml:"directories"`
	DefaultName string           `toml:"default_name"`
	DefaultSize float64          `toml:"default_size"`
	Downloads   []DownloadConfig `toml:"download"`
}

// DownloadConfig is one [[fonts.download]] entry: either a direct URL or a
// (part1, part2, name) triple addressing the Google Fonts repository.
type DownloadConfig struct {
	URL   string `toml:"url"`
	Part1 string `toml:"part1"`
	Part2 string `toml:"part2"`
	Name  string `toml:"name"`
}

// IsGoogle reports whether the entry addresses the Google Fonts repository.
func (d DownloadConfig) IsGoogle() bool {
	return d.URL == "" && d.Part1 != "" && d.Part2 != "" && d.Name != ""
}

// GridConfig is the [grid] section.
type GridConfig struct {
	Rows        int          `toml:"rows"`
	Columns     int          `toml:"columns"`
	MarginX     int          `toml:"margin_x"`
	MarginY     int          `toml:"margin_y"`
	Borders     bool         `toml:"borders"`
	BorderColor string       `toml:"border_color"`
	Merge       [][][]int    `toml:"merge"`
	Texts       []TextConfig `toml:"texts"`
}

// TextConfig is one [[grid.texts]] entry. The target cell is given either as
// start = [row, col] or as index = n (the nth merge region); entries with
// neither address the merge region at their own list position.
type TextConfig struct {
	Start     []int   `toml:"start"`
	Index     *int    `toml:"index"`
	Text      string  `toml:"text"`
	FontName  string  `toml:"font_name"`
	Variation string  `toml:"variation"`
	Size      float64 `toml:"size"`
	Fill      string  `toml:"fill"`
	Anchor    string  `toml:"anchor"`
}

// Load reads and decodes a config file, filling in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read config %s", path)
	}
	return Parse(data)
}

// Parse decodes TOML config bytes, filling in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse config")
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Image.Width == 0 {
		c.Image.Width = 480
	}
	if c.Image.Height == 0 {
		c.Image.Height = 280
	}
	if c.Image.Background == "" {
		c.Image.Background = "white"
	}
	if c.Grid != nil {
		if c.Grid.Rows == 0 {
			c.Grid.Rows = 1
		}
		if c.Grid.Columns == 0 {
			c.Grid.Columns = 1
		}
		if c.Grid.BorderColor == "" {
			c.Grid.BorderColor = "gray"
		}
	}
}

// Spec builds the grid specification for the configured image.
func (c *Config) Spec() (geometry.GridSpec, error) {
	if c.Grid == nil {
		return geometry.GridSpec{}, errors.New(errors.ErrCodeInvalidConfig, "config has no [grid] section")
	}
	return geometry.GridSpec{
		Rows:    c.Grid.Rows,
		Cols:    c.Grid.Columns,
		MarginX: c.Grid.MarginX,
		MarginY: c.Grid.MarginY,
		Width:   c.Image.Width,
		Height:  c.Image.Height,
	}, nil
}

// Regions converts the merge list. Each item must be a
// [[startRow, startCol], [endRow, endCol]] pair.
func (c *Config) Regions() ([]geometry.MergeRegion, error) {
	if c.Grid == nil {
		return nil, nil
	}

	regions := make([]geometry.MergeRegion, 0, len(c.Grid.Merge))
	for i, m := range c.Grid.Merge {
		if len(m) != 2 || len(m[0]) != 2 || len(m[1]) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"merge entry %d must be [[startRow, startCol], [endRow, endCol]]", i)
		}
		regions = append(regions, geometry.MergeRegion{
			StartRow: m[0][0], StartCol: m[0][1],
			EndRow: m[1][0], EndCol: m[1][1],
		})
	}
	return regions, nil
}

// Table compiles the grid section into a validated geometry table.
func (c *Config) Table() (*geometry.Table, error) {
	spec, err := c.Spec()
	if err != nil {
		return nil, err
	}
	regions, err := c.Regions()
	if err != nil {
		return nil, err
	}
	return geometry.NewTable(spec, regions)
}

// Entries converts the text list into layout entries. Addressing follows
// the config order: explicit start, explicit index, or the entry's own list
// position as merge index.
func (c *Config) Entries() ([]layout.TextEntry, error) {
	if c.Grid == nil {
		return nil, nil
	}

	entries := make([]layout.TextEntry, 0, len(c.Grid.Texts))
	for i, t := range c.Grid.Texts {
		var ref geometry.CellRef
		switch {
		case len(t.Start) == 2 && t.Index != nil:
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"text entry %d has both start and index", i)
		case len(t.Start) == 2:
			ref = geometry.At(t.Start[0], t.Start[1])
		case len(t.Start) != 0:
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"text entry %d: start must be [row, col]", i)
		case t.Index != nil:
			ref = geometry.Index(*t.Index)
		default:
			ref = geometry.Index(i)
		}

		entries = append(entries, layout.TextEntry{
			Cell: ref,
			Text: t.Text,
			Style: layout.Style{
				FontName:      t.FontName,
				FontVariation: t.Variation,
				FontSize:      t.Size,
				Fill:          t.Fill,
				Anchor:        t.Anchor,
			},
		})
	}
	return entries, nil
}

// GridStyle is the style layer below the per-entry overrides: the default
// font name and size from [fonts]. A zero size requests fit-to-box sizing.
func (c *Config) GridStyle() layout.Style {
	return layout.Style{
		FontName: c.Fonts.DefaultName,
		FontSize: c.Fonts.DefaultSize,
	}
}
