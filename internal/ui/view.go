package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pomopet/internal/pet"
	"pomopet/internal/timer"
)

// PlaygroundWidth is the number of cells the pet can wander across.
const PlaygroundWidth = 40

var gameStyles = struct {
	title     lipgloss.Style
	coins     lipgloss.Style
	status    lipgloss.Style
	clock     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	banner    lipgloss.Style
	ground    lipgloss.Style
	menuBox   lipgloss.Style
	help      lipgloss.Style
}{
	title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	coins: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FACC15")),

	status: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF75B5")).
		Width(PlaygroundWidth + 4),

	clock: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F8FAFC")).
		Padding(1, 4),

	tab: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#94A3B8")).
		Padding(0, 1),

	activeTab: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#0F172A")).
		Background(lipgloss.Color("#FF75B5")).
		Padding(0, 1),

	banner: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0E7FF")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#818CF8")).
		Padding(0, 1).
		Width(PlaygroundWidth),

	ground: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981")),

	menuBox: lipgloss.NewStyle().
		Padding(0, 2),

	help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B")),
}

// View implements tea.Model
func (m Model) View() string {
	if m.Quitting {
		return "See you next session!\n"
	}
	switch m.Screen {
	case screenStore:
		return m.renderStore()
	case screenDev:
		return m.renderDevPanel()
	}

	sections := []string{
		m.renderHeader(),
		"",
		m.renderTabs(),
		m.renderClock(),
		gameStyles.status.Render(m.renderProgress()),
	}

	if m.Motivation.Motivation != "" {
		banner := "💬 " + m.Motivation.Motivation
		if m.Motivation.Activity != "" {
			banner += "\n\n🧘 " + m.Motivation.Activity
		}
		sections = append(sections, "", gameStyles.banner.Render(banner))
	}

	sections = append(sections, "", m.renderPlayground(), gameStyles.status.Render(m.renderStatus()))

	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}

	sections = append(sections,
		"",
		gameStyles.help.Render("space start/pause • r reset • 1/2/3 mode • f feed (10💰)"),
		gameStyles.help.Render("s store • d dev panel • q quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	return gameStyles.title.Render("🍅 PomoPet") + "  " +
		gameStyles.coins.Render(fmt.Sprintf("💰 %d", m.Snapshot.Profile.Coins))
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, mode := range timer.Modes() {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		if mode == m.Snapshot.Mode {
			tabs = append(tabs, gameStyles.activeTab.Render(label))
		} else {
			tabs = append(tabs, gameStyles.tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderClock() string {
	state := "paused"
	if m.Snapshot.Running {
		state = "running"
	}
	return gameStyles.clock.Render(timer.Format(m.Snapshot.Remaining) + "  " + state)
}

func (m Model) renderProgress() string {
	width := PlaygroundWidth
	filled := int(m.Snapshot.Progress * float64(width) / 100)
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// renderPlayground draws the pet (or its current animation) on the ground.
func (m Model) renderPlayground() string {
	emoji := pet.ActiveDefinition(m.Snapshot.Profile).Emoji

	if m.Animation.Type != AnimNone {
		if m.Animation.Emoji != "" {
			emoji = m.Animation.Emoji
		}
		animStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 2)
		return animStyle.Render(GetAnimationFrame(m.Animation, emoji))
	}

	col := int(m.Position / 100 * float64(PlaygroundWidth-2))
	col = max(0, min(col, PlaygroundWidth-2))
	row := strings.Repeat(" ", col) + emoji
	ground := gameStyles.ground.Render(strings.Repeat("▁", PlaygroundWidth))
	return lipgloss.JoinVertical(lipgloss.Left, "", row, ground)
}

func (m Model) renderStatus() string {
	p := m.Snapshot.Profile
	def := pet.ActiveDefinition(p)
	return fmt.Sprintf("%s  [%s] %d%%  %s",
		def.Name, pet.FullnessBar(p.PetFullness, 10), p.PetFullness, pet.GetStatusWithLabel(p))
}

func (m Model) renderStore() string {
	p := m.Snapshot.Profile
	header := gameStyles.title.Render("🏪 Pet Store") + "  " + gameStyles.coins.Render(fmt.Sprintf("💰 %d", p.Coins))

	var items []string
	for i, def := range pet.Catalog() {
		cursor := " "
		if m.StoreChoice == i {
			cursor = ">"
		}
		var tag string
		switch {
		case p.ActivePetID == def.ID:
			tag = "equipped"
		case p.IsUnlocked(def.ID):
			tag = "owned"
		default:
			tag = fmt.Sprintf("%d💰", def.Price)
		}
		name := lipgloss.NewStyle().Foreground(lipgloss.Color(def.Color)).Render(def.Name)
		items = append(items, fmt.Sprintf("%s %s %-10s %-9s %s", cursor, def.Emoji, name, tag, def.Description))
	}

	sections := []string{
		header,
		"",
		gameStyles.menuBox.Render(strings.Join(items, "\n")),
	}
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}
	if m.Animation.Type != AnimNone {
		sections = append(sections, "", m.renderPlayground())
	}
	sections = append(sections, "", gameStyles.help.Render("enter adopt/equip • arrows to move • s or esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderDevPanel() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B")).
		Render("🛠️  Developer / Test Mode")

	d := m.Snapshot.Durations
	current := fmt.Sprintf("Current: focus %s • short %s • long %s",
		timer.Format(d.Focus), timer.Format(d.ShortBreak), timer.Format(d.LongBreak))

	var items []string
	for i, opt := range devMenuOptions() {
		cursor := " "
		if m.DevChoice == i {
			cursor = ">"
		}
		items = append(items, fmt.Sprintf("%s %s", cursor, opt))
	}

	sections := []string{
		header,
		"",
		gameStyles.help.Render(current),
		"",
		gameStyles.menuBox.Render(strings.Join(items, "\n")),
	}
	if m.Message != "" && pet.TimeNow().Before(m.MessageExpires) {
		sections = append(sections, "", gameStyles.status.Render(m.Message))
	}
	sections = append(sections, "", gameStyles.help.Render("Force complete tests rewards and motivation instantly • d or esc to close"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
