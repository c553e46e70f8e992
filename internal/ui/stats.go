package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomopet/internal/pet"
)

// StatsModel shows the profile card until any key or click.
type StatsModel struct {
	Profile pet.Profile
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	return RenderStatsCard(m.Profile) + "\nPress ESC, click, or any key to close..."
}

var statsCard = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(lipgloss.Color("#FF75B5")).
	Padding(0, 2).
	Width(38)

// RenderStatsCard draws the profile as a bordered card.
func RenderStatsCard(p pet.Profile) string {
	def := pet.ActiveDefinition(p)

	rows := [][2]string{
		{"Coins", fmt.Sprintf("%d", p.Coins)},
		{"Focus", fmt.Sprintf("%.1f min (~%d pomodoros)", p.TotalFocusMinutes, int(p.TotalFocusMinutes/25))},
		{"Pets", fmt.Sprintf("%d of %d", len(p.UnlockedPetIDs), len(pet.Catalog()))},
		{"Status", pet.GetStatusWithLabel(p)},
		{"Fullness", fmt.Sprintf("[%s] %d%%", pet.FullnessBar(p.PetFullness, 10), p.PetFullness)},
	}
	lines := []string{gameStyles.title.Render(def.Emoji + " " + def.Name), ""}
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-9s %s", r[0]+":", r[1]))
	}
	return statsCard.Render(strings.Join(lines, "\n")) + "\n"
}

// DisplayStats shows the stats card until a key is pressed
func DisplayStats(p pet.Profile) error {
	program := tea.NewProgram(StatsModel{Profile: p}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running stats display: %w", err)
	}
	return nil
}
