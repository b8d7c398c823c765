package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/funnelgraph/funnelgraph/pkg/funnel"
)

// Preview styles.
var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true)
	previewDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	previewHelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

const (
	previewChartWidth = 64.0 // geometry width in character cells
	previewRowHeight  = 2    // terminal lines per block
)

// newPreviewCmd creates the preview command: an interactive terminal view of
// the funnel that re-runs the real geometry engine on every toggle.
func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [data.json]",
		Short: "Explore a funnel dataset interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := loadRows(args[0])
			if err != nil {
				return err
			}
			m := newPreviewModel(args[0], rows)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	source string
	rows   []funnel.Row
	opts   funnel.Options
	err    error
}

func newPreviewModel(source string, rows []funnel.Row) previewModel {
	return previewModel{source: source, rows: rows}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "i":
		m.opts.IsInverted = !m.opts.IsInverted
	case "d":
		m.opts.DynamicArea = !m.opts.DynamicArea
	case "p":
		m.opts.BottomPinch = (m.opts.BottomPinch + 1) % (len(m.rows) + 1)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(previewTitleStyle.Render("funnelgraph preview"))
	b.WriteString(previewDimStyle.Render("  " + m.source))
	b.WriteString("\n\n")

	cfg, rows, err := funnel.Resolve(m.rows, m.opts, previewChartWidth, float64(len(m.rows)*previewRowHeight))
	if err != nil {
		return b.String() + "error: " + err.Error() + "\n"
	}
	paths := funnel.ComputePaths(rows, cfg)

	for i, r := range rows {
		width := blockCells(paths[i])
		bar := strings.Repeat("█", width)
		pad := strings.Repeat(" ", (int(previewChartWidth)-width)/2)

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color))
		b.WriteString(pad + style.Render(bar) + "\n")
		b.WriteString(pad + previewDimStyle.Render(fmt.Sprintf("%s: %s", r.Label, r.FormattedValue())) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf(
		"i invert [%s]  d dynamic-area [%s]  p pinch [%d]  q quit",
		onOff(m.opts.IsInverted), onOff(m.opts.DynamicArea), m.opts.BottomPinch)))
	b.WriteString("\n")
	return b.String()
}

// blockCells maps a block's mean width to a cell count, clamped to at least
// one cell so zero-height dynamic blocks stay visible.
func blockCells(p funnel.Path) int {
	var top, bottom float64
	switch len(p) {
	case 5:
		top = p[1].X - p[0].X
		bottom = p[2].X - p[3].X
	case 8:
		top = p[2].X - p[0].X
		bottom = p[3].X - p[5].X
	}
	cells := int((top + bottom) / 2)
	if cells < 1 {
		cells = 1
	}
	if cells > int(previewChartWidth) {
		cells = int(previewChartWidth)
	}
	return cells
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
