package cli

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/holgern/piltext/pkg/config"
	"github.com/holgern/piltext/pkg/render/ascii"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output       string // output image path; format derives from the extension
	asciiArt     bool   // print colored ASCII art to the terminal
	simple       bool   // print monochrome ASCII art with a coarse ramp
	displayWidth int    // terminal output width in characters
	noCache      bool   // disable the font download cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <config.toml>",
		Short: "Render a config file to an image or terminal ASCII art",
		Long: `Render reads a TOML config describing the image, fonts and text grid,
draws the texts onto the canvas, applies the configured transformations and
writes the result. With --ascii or --simple the image is printed to the
terminal instead of (or in addition to) the output file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output image path (png, jpg, gif, tif or bmp)")
	cmd.Flags().BoolVarP(&opts.asciiArt, "ascii", "a", false, "print the image as colored ASCII art")
	cmd.Flags().BoolVarP(&opts.simple, "simple", "s", false, "print the image as monochrome ASCII art")
	cmd.Flags().IntVar(&opts.displayWidth, "display-width", 80, "terminal output width in characters")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the font download cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	result, err := c.newRunner(opts.noCache).Execute(ctx, cfg)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %d texts", len(result.Instructions)))

	if opts.output != "" {
		if err := imaging.Save(result.Image, opts.output); err != nil {
			return fmt.Errorf("save %s: %w", opts.output, err)
		}
		printSuccess("Image written")
		printFile(opts.output)
		b := result.Image.Bounds()
		printKeyValue("Size", fmt.Sprintf("%dx%d px", b.Dx(), b.Dy()))
		printKeyValue("Texts", fmt.Sprintf("%d", len(result.Instructions)))
	}

	if opts.asciiArt || opts.simple {
		art := ascii.Convert(result.Image, ascii.Options{
			Columns:    opts.displayWidth,
			Monochrome: opts.simple,
			Ramp:       asciiRamp(opts.simple),
		})
		fmt.Println(art)
	} else if opts.output == "" {
		printWarning("No output requested; pass --output, --ascii or --simple")
	}

	return nil
}

func asciiRamp(simple bool) string {
	if simple {
		return ascii.SimpleRamp
	}
	return ascii.DefaultRamp
}
