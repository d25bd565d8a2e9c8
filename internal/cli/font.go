package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holgern/piltext/pkg/fonts"
)

// fontCommand creates the font management command.
func (c *CLI) fontCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "font",
		Short: "Manage fonts used for rendering",
	}

	cmd.AddCommand(c.fontListCommand())
	cmd.AddCommand(c.fontDirsCommand())
	cmd.AddCommand(c.fontDownloadCommand())
	cmd.AddCommand(c.fontDownloadURLCommand())
	cmd.AddCommand(c.fontVariationsCommand())
	cmd.AddCommand(c.fontDeleteAllCommand())

	return cmd
}

// fontListCommand creates the "font list" subcommand.
func (c *CLI) fontListCommand() *cobra.Command {
	var fullPath, system bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available fonts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := newFontManager(true)
			names := fm.List(fullPath, system)
			if len(names) == 0 {
				printInfo("No fonts found")
				printDetail("Download one: %s font download ofl roboto Roboto-Regular.ttf", appName)
				return nil
			}
			for _, n := range names {
				fmt.Println(n)
			}
			printDetail("%d fonts", len(names))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fullPath, "full-path", false, "print absolute file paths")
	cmd.Flags().BoolVar(&system, "system", false, "include system fonts")

	return cmd
}

// fontDirsCommand creates the "font dirs" subcommand.
func (c *CLI) fontDirsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dirs",
		Short: "Print the font search directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range newFontManager(true).Dirs() {
				fmt.Println(dir)
			}
			return nil
		},
	}
}

// fontDownloadCommand creates the "font download" subcommand for Google
// Fonts downloads.
func (c *CLI) fontDownloadCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "download <license> <family> <file>",
		Short: "Download a font from the Google Fonts repository",
		Long: `Download fetches a font file from the Google Fonts repository into the
managed font directory. The three arguments address the file inside the
repository, e.g.:

  piltext font download ofl roboto Roboto-Regular.ttf`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := newFontManager(noCache)
			path, err := fm.DownloadGoogleFont(cmd.Context(), args[0], args[1], args[2])
			if err != nil {
				return err
			}
			printSuccess("Font downloaded")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the download cache")

	return cmd
}

// fontDownloadURLCommand creates the "font download-url" subcommand.
func (c *CLI) fontDownloadURLCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "download-url <url>",
		Short: "Download a font file from a direct URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := newFontManager(noCache)
			path, err := fm.DownloadURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess("Font downloaded")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the download cache")

	return cmd
}

// fontVariationsCommand creates the "font variations" subcommand.
func (c *CLI) fontVariationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "variations <name>",
		Short: "List the variations available for a font",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variations, err := newFontManager(true).Variations(args[0])
			if err != nil {
				return err
			}
			if len(variations) == 0 {
				printInfo("No variations found for %s", args[0])
				return nil
			}
			fmt.Println(strings.Join(variations, "\n"))
			return nil
		},
	}
}

// fontDeleteAllCommand creates the "font delete-all" subcommand.
func (c *CLI) fontDeleteAllCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete-all",
		Short: "Delete every font from the managed directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fm := newFontManager(true)
			if !yes {
				printWarning("This deletes every font in %s", defaultFontDirHint())
				printDetail("Re-run with --yes to confirm")
				return nil
			}

			deleted, err := fm.DeleteAll()
			if err != nil {
				return err
			}
			printSuccess("Deleted %d fonts", len(deleted))
			for _, name := range deleted {
				printDetail("%s", name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation")

	return cmd
}

// defaultFontDirHint names the managed directory in help output.
func defaultFontDirHint() string {
	dir, err := fonts.DefaultDir()
	if err != nil {
		return "~/." + appName + "/fonts"
	}
	return dir
}
