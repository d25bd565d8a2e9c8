package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/holgern/piltext/pkg/config"
	"github.com/holgern/piltext/pkg/pipeline"
	"github.com/holgern/piltext/pkg/render/ascii"
)

// minPreviewColumns keeps the preview legible when shrinking.
const minPreviewColumns = 20

// previewCommand creates the interactive terminal preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview <config.toml>",
		Short: "Interactively preview a config file in the terminal",
		Long: `Preview renders the config as ASCII art and keeps it on screen.
The config can be edited and re-rendered without leaving the preview:

  r       re-render (picks up config changes)
  m       toggle monochrome output
  + / -   grow / shrink the preview
  g       toggle the grid text dump
  q       quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model := previewModel{
				cfgPath: args[0],
				runner:  c.newRunner(noCache),
				columns: 80,
			}
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the font download cache")

	return cmd
}

// renderedMsg carries a finished re-render back into the model.
type renderedMsg struct {
	art string
	err error
}

// previewModel is the bubbletea model for the preview command.
type previewModel struct {
	cfgPath    string
	runner     *pipeline.Runner
	columns    int
	monochrome bool
	gridDump   bool
	art        string
	err        error
	rendering  bool
}

func (m previewModel) Init() tea.Cmd {
	return m.render()
}

// render re-reads the config and produces the ASCII frame.
func (m previewModel) render() tea.Cmd {
	cfgPath, columns := m.cfgPath, m.columns
	monochrome, gridDump := m.monochrome, m.gridDump
	runner := m.runner

	return func() tea.Msg {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return renderedMsg{err: err}
		}
		result, err := runner.Execute(context.Background(), cfg)
		if err != nil {
			return renderedMsg{err: err}
		}

		if gridDump {
			art, err := ascii.GridText(result.Table, result.Entries, columns)
			return renderedMsg{art: art, err: err}
		}

		art := ascii.Convert(result.Image, ascii.Options{
			Columns:    columns,
			Monochrome: monochrome,
		})
		return renderedMsg{art: art}
	}
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderedMsg:
		m.art = msg.art
		m.err = msg.err
		m.rendering = false
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.rendering = true
			return m, m.render()
		case "m":
			m.monochrome = !m.monochrome
			m.rendering = true
			return m, m.render()
		case "g":
			m.gridDump = !m.gridDump
			m.rendering = true
			return m, m.render()
		case "+", "=":
			m.columns += 10
			m.rendering = true
			return m, m.render()
		case "-":
			if m.columns-10 >= minPreviewColumns {
				m.columns -= 10
				m.rendering = true
				return m, m.render()
			}
		}

	case tea.WindowSizeMsg:
		if msg.Width-2 >= minPreviewColumns {
			m.columns = msg.Width - 2
			m.rendering = true
			return m, m.render()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("piltext preview · %s", m.cfgPath)))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleWarning.Render(fmt.Sprintf("render failed: %v", m.err)))
	case m.rendering && m.art == "":
		b.WriteString(StyleDim.Render("rendering..."))
	default:
		b.WriteString(m.art)
	}

	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("r re-render  m monochrome  g grid dump  +/- size  q quit"))
	b.WriteString("\n")

	return b.String()
}
