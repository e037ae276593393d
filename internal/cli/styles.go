package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hedaya/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(18)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	levelStyles = map[models.Level]lipgloss.Style{
		models.LevelSeeds:     lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		models.LevelRoots:     lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
		models.LevelGrowth:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
		models.LevelSteadfast: lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		models.LevelBlossom:   lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
	}
)

const progressBarWidth = 20

func check(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return pendingStyle.Render("·")
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func renderLevel(l models.Level) string {
	style, ok := levelStyles[l]
	if !ok {
		style = pendingStyle
	}
	return style.Render(string(l) + " " + l.TitleAr())
}

// progressBar draws a fraction in [0, 1] as a fixed-width bar.
func progressBar(fraction float64) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*progressBarWidth + 0.5)
	return doneStyle.Render(strings.Repeat("█", filled)) +
		pendingStyle.Render(strings.Repeat("░", progressBarWidth-filled))
}
