package cli

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flexline/pkg/flex"
	"github.com/matzehuels/flexline/pkg/pipeline"
	"github.com/matzehuels/flexline/pkg/profile"
)

var (
	previewBarStyle   = lipgloss.NewStyle().Foreground(colorCyan)
	previewEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// barPalette cycles across groups so adjacent bars stay distinguishable.
var barPalette = []lipgloss.Color{colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorWhite}

// =============================================================================
// PreviewModel - Interactive allocation preview
// =============================================================================

// PreviewModel is the bubbletea model for exploring how allocations respond
// to changes in the total.
type PreviewModel struct {
	Profile profile.Profile
	Total   float64
	Step    float64
	Width   int

	allocations map[string]float64
	err         error
}

// NewPreviewModel creates a preview model solved at the given starting total.
func NewPreviewModel(p profile.Profile, total float64) PreviewModel {
	m := PreviewModel{
		Profile: p,
		Total:   total,
		Step:    total / 20,
		Width:   72,
	}
	if m.Step <= 0 {
		m.Step = 10
	}
	m.resolve()
	return m
}

// resolve recomputes the allocations for the current total.
func (m *PreviewModel) resolve() {
	m.allocations, m.err = flex.Distribute(m.Total, m.Profile.FlexGroups())
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "-":
			m.Total -= m.Step
			if m.Total < 0 {
				m.Total = 0
			}
			m.resolve()
		case "right", "l", "+":
			m.Total += m.Step
			m.resolve()
		case "up", "k":
			m.Step *= 2
		case "down", "j":
			if m.Step > 1 {
				m.Step /= 2
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width - 8
		if m.Width < 20 {
			m.Width = 20
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	title := m.Profile.Name
	if title == "" {
		title = "preview"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ adjust total  ↑/↓ adjust step  q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("total %s  step %s\n\n",
		StyleNumber.Render(formatSize(m.Total)),
		previewDimStyle.Render(formatSize(m.Step))))

	if m.err != nil {
		b.WriteString(StyleWarning.Render(iconWarning + " " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	keys := make([]string, 0, len(m.allocations))
	for key := range m.allocations {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	b.WriteString(m.renderBar(keys))
	b.WriteString("\n\n")
	b.WriteString(m.renderTable(keys))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws one horizontal bar split proportionally across groups.
// Cell counts use largest-remainder rounding so the bar is always full width.
func (m PreviewModel) renderBar(keys []string) string {
	if m.Total <= 0 {
		return previewEmptyStyle.Render(strings.Repeat("░", m.Width))
	}

	cells := make(map[string]float64, len(keys))
	for _, key := range keys {
		cells[key] = m.allocations[key] / m.Total * float64(m.Width)
	}
	widths := pipeline.QuantizeLargestRemainder(cells, float64(m.Width))

	var b strings.Builder
	for i, key := range keys {
		style := previewBarStyle.Foreground(barPalette[i%len(barPalette)])
		b.WriteString(style.Render(strings.Repeat("█", int(widths[key]))))
	}
	return b.String()
}

func (m PreviewModel) renderTable(keys []string) string {
	rows := make([][]string, 0, len(keys))
	for i, key := range keys {
		swatch := lipgloss.NewStyle().
			Foreground(barPalette[i%len(barPalette)]).
			Render("■")
		v := m.allocations[key]
		rows = append(rows, []string{
			swatch + " " + key,
			formatSize(v),
			fmt.Sprintf("%.1f%%", 100*v/m.Total),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Group", "Size", "Of Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		})
	return t.Render()
}
