// Package chase is a short break-time animation: the active pet chases a
// target across the terminal. How fast it runs depends on how well fed it is.
package chase

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomopet/internal/pet"
)

const (
	tickInterval   = 70 * time.Millisecond
	minVisibleRows = 6

	// The target flutters along a sine wave over the field.
	flutterFrequency = 0.2
)

// Target is something the pet can chase. Speed is the number of frames
// the target needs to move one cell; higher is slower.
type Target struct {
	Emoji string
	Name  string
	Speed int
}

var Targets = map[string]Target{
	"butterfly": {Emoji: "🦋", Name: "butterfly", Speed: 3},
	"ball":      {Emoji: "⚽", Name: "ball", Speed: 4},
	"mouse":     {Emoji: "🐁", Name: "mouse", Speed: 2},
}

// petStride returns how many frames the pet needs per step. Hungry pets
// are slow.
func petStride(fullness int) int {
	switch {
	case fullness >= pet.ContentThreshold:
		return 1
	case fullness >= pet.HungryThreshold:
		return 2
	default:
		return 3
	}
}

func chaseMood(fullness, distX, distY int) string {
	if absInt(distX) <= 2 && absInt(distY) <= 1 {
		return "about to pounce!"
	}
	switch {
	case fullness >= pet.ContentThreshold:
		return "full of energy"
	case fullness >= pet.HungryThreshold:
		return "chasing"
	default:
		return "too hungry to run fast"
	}
}

// Model is the chase scene. Positions are cells on a field of
// fieldRows() x TermWidth.
type Model struct {
	Pet        pet.Definition
	Fullness   int
	Target     Target
	TermWidth  int
	TermHeight int
	PetPosX    int
	PetPosY    int
	TargetPosX int
	TargetPosY int
	Frame      int
	Caught     bool
}

type animTickMsg time.Time

// NewModel starts def at the left edge with the target a few cells ahead.
func NewModel(def pet.Definition, fullness int, target Target) Model {
	return Model{
		Pet:        def,
		Fullness:   fullness,
		Target:     target,
		TargetPosX: 5,
	}
}

// Run plays the chase and reports whether the pet caught the target.
func Run(def pet.Definition, fullness int, targetName string) (bool, error) {
	target, ok := Targets[targetName]
	if !ok {
		return false, fmt.Errorf("unknown chase target %q", targetName)
	}

	program := tea.NewProgram(NewModel(def, fullness, target), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("chase animation error: %w", err)
	}
	return final.(Model).Caught, nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), tea.EnterAltScreen)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.TermWidth, m.TermHeight = msg.Width, msg.Height
		m.clampPositions()
		return m, nil

	case animTickMsg:
		m.Frame++
		if m.TermWidth == 0 || m.TermHeight == 0 {
			return m, tick()
		}
		if m.Frame%m.Target.Speed == 0 && !m.moveTarget() {
			return m, tea.Quit
		}
		if m.Frame%petStride(m.Fullness) == 0 {
			m.movePet()
		}
		if m.touching() {
			m.Caught = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// moveTarget advances the target one cell and reports whether it is still
// on the field.
func (m *Model) moveTarget() bool {
	m.TargetPosX++
	if m.TargetPosX >= m.maxX() {
		return false
	}
	rows := float64(m.fieldRows())
	m.TargetPosY = int(rows/2 + rows/3*math.Sin(float64(m.TargetPosX)*flutterFrequency))
	m.clampPositions()
	return true
}

// movePet steps toward the target, keeping a short lead on the X axis so
// the catch happens on the target's row.
func (m *Model) movePet() {
	if m.TargetPosX-m.PetPosX > 3 {
		m.PetPosX++
	}
	switch dy := m.TargetPosY - m.PetPosY; {
	case dy > 1:
		m.PetPosY++
	case dy < -1:
		m.PetPosY--
	}
	m.clampPositions()
}

func (m Model) touching() bool {
	return absInt(m.TargetPosX-m.PetPosX) <= 1 && m.TargetPosY == m.PetPosY
}

// View implements tea.Model
func (m Model) View() string {
	if m.TermWidth == 0 || m.TermHeight == 0 {
		return "Initializing..."
	}

	field := make([][]rune, m.fieldRows())
	for y := range field {
		field[y] = []rune(strings.Repeat(" ", m.TermWidth))
	}
	m.draw(field, m.TargetPosX, m.TargetPosY, m.Target.Emoji)
	m.draw(field, m.PetPosX, m.PetPosY, m.Pet.Emoji)

	var b strings.Builder
	for _, row := range field {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	mood := chaseMood(m.Fullness, m.TargetPosX-m.PetPosX, m.TargetPosY-m.PetPosY)
	fmt.Fprintf(&b, "\n%s is %s • press any key to exit", m.Pet.Name, mood)
	return b.String()
}

// draw writes emoji at (x, y), skipping anything off the field.
func (m Model) draw(field [][]rune, x, y int, emoji string) {
	if y < 0 || y >= len(field) || x < 0 || x >= m.maxX() {
		return
	}
	row := field[y]
	for i, r := range []rune(emoji) {
		if x+i < len(row) {
			row[x+i] = r
		}
	}
}

func (m *Model) clampPositions() {
	rows := m.fieldRows()
	if rows < 1 {
		return
	}
	m.PetPosX = max(0, min(m.PetPosX, m.maxX()))
	m.TargetPosX = max(0, min(m.TargetPosX, m.maxX()))
	m.PetPosY = max(0, min(m.PetPosY, rows-1))
	m.TargetPosY = max(0, min(m.TargetPosY, rows-1))
}

// visibleRows is the screen height the scene uses, status line included.
func (m Model) visibleRows() int {
	if m.TermHeight <= 0 {
		return 0
	}
	return max(m.TermHeight-2, minVisibleRows)
}

// fieldRows is visibleRows without the status line.
func (m Model) fieldRows() int {
	return max(m.visibleRows()-1, 0)
}

func (m Model) maxX() int {
	return max(m.TermWidth-2, 0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
