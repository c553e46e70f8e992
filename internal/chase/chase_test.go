package chase

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomopet/internal/pet"
)

func testModel(fullness int) Model {
	m := NewModel(pet.StarterPet(), fullness, Targets["butterfly"])
	m.TermWidth = 80
	m.TermHeight = 24
	return m
}

func tickOnce(m Model) (Model, tea.Cmd) {
	updated, cmd := m.Update(animTickMsg(time.Now()))
	return updated.(Model), cmd
}

func TestTargets(t *testing.T) {
	tests := []struct {
		target    string
		wantEmoji string
	}{
		{"butterfly", "🦋"},
		{"ball", "⚽"},
		{"mouse", "🐁"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			target, exists := Targets[tt.target]
			if !exists {
				t.Fatalf("Target %q does not exist", tt.target)
			}
			if target.Name != tt.target {
				t.Errorf("Name = %q, want %q", target.Name, tt.target)
			}
			if target.Emoji != tt.wantEmoji {
				t.Errorf("Emoji = %q, want %q", target.Emoji, tt.wantEmoji)
			}
			if target.Speed <= 0 {
				t.Errorf("Speed = %d, want > 0", target.Speed)
			}
		})
	}
}

func TestModel_Init(t *testing.T) {
	if cmd := testModel(80).Init(); cmd == nil {
		t.Error("Init() returned nil command, expected batch command")
	}
}

func TestModel_Update_KeyMsg(t *testing.T) {
	m := testModel(80)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("KeyMsg should return tea.Quit command")
	}
	if updated.(Model).Caught {
		t.Error("Quitting should not count as a catch")
	}
}

func TestModel_Update_WindowSizeMsg(t *testing.T) {
	m := testModel(80)
	m.PetPosX = 70
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	got := updated.(Model)
	if got.TermWidth != 40 || got.TermHeight != 10 {
		t.Errorf("Size = %dx%d, want 40x10", got.TermWidth, got.TermHeight)
	}
	if got.PetPosX != 38 {
		t.Errorf("PetPosX = %d, want clamped to 38", got.PetPosX)
	}
}

func TestModel_Update_WaitsForSize(t *testing.T) {
	m := NewModel(pet.StarterPet(), 80, Targets["ball"])
	got, cmd := tickOnce(m)
	if cmd == nil || got.TargetPosX != 5 {
		t.Errorf("Expected idle tick before the first resize, got target at %d", got.TargetPosX)
	}
}

func TestModel_Update_TargetMovesAtItsSpeed(t *testing.T) {
	m := testModel(80)
	for i := 0; i < m.Target.Speed-1; i++ {
		m, _ = tickOnce(m)
	}
	if m.TargetPosX != 5 {
		t.Fatalf("Target moved early to %d", m.TargetPosX)
	}
	m, _ = tickOnce(m)
	if m.TargetPosX != 6 {
		t.Errorf("TargetPosX = %d, want 6", m.TargetPosX)
	}
}

func TestModel_Update_TargetReachesEdge(t *testing.T) {
	m := testModel(80)
	m.TargetPosX = m.maxX() - 1
	m.Frame = m.Target.Speed - 1
	m.PetPosY = 20
	m, cmd := tickOnce(m)
	if cmd == nil {
		t.Fatal("Expected quit when the target escapes")
	}
	if m.Caught {
		t.Error("Escaped target should not count as caught")
	}
}

func TestModel_Update_CatchEndsRun(t *testing.T) {
	m := testModel(80)
	m.TermWidth = 40
	m.TermHeight = 10
	m.PetPosX, m.PetPosY = 5, 3
	m.TargetPosX, m.TargetPosY = 6, 3
	m, cmd := tickOnce(m)
	if cmd == nil || !m.Caught {
		t.Fatal("Expected the pet to catch the target")
	}
}

func TestHungryPetIsSlower(t *testing.T) {
	run := func(fullness int) int {
		m := testModel(fullness)
		m.TargetPosX = 60
		m.TargetPosY = 12
		m.PetPosY = 12
		m.Target = Target{Emoji: "⚽", Name: "ball", Speed: 1000}
		for i := 0; i < 12; i++ {
			m, _ = tickOnce(m)
		}
		return m.PetPosX
	}

	full, peckish, hungry := run(90), run(50), run(10)
	if full != 12 || peckish != 6 || hungry != 4 {
		t.Errorf("Distances = %d/%d/%d, want 12/6/4", full, peckish, hungry)
	}
}

func TestChaseMood(t *testing.T) {
	tests := []struct {
		fullness, distX, distY int
		want                   string
	}{
		{50, 1, 0, "about to pounce!"},
		{10, 2, 1, "about to pounce!"},
		{90, 10, 5, "full of energy"},
		{50, 10, 5, "chasing"},
		{10, 10, 5, "too hungry to run fast"},
	}
	for _, tt := range tests {
		if got := chaseMood(tt.fullness, tt.distX, tt.distY); got != tt.want {
			t.Errorf("chaseMood(%d, %d, %d) = %q, want %q", tt.fullness, tt.distX, tt.distY, got, tt.want)
		}
	}
}

func TestModel_View(t *testing.T) {
	if got := NewModel(pet.StarterPet(), 80, Targets["mouse"]).View(); got != "Initializing..." {
		t.Errorf("View before resize = %q", got)
	}

	def, _ := pet.LookupPet("frog")
	m := NewModel(def, 80, Targets["mouse"])
	m.TermWidth, m.TermHeight = 40, 12
	m.PetPosY, m.TargetPosY = 2, 4
	view := m.View()
	for _, want := range []string{"🐸", "🐁", "Pepe is"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
	if rows := strings.Count(view, "\n"); rows != m.visibleRows() {
		t.Errorf("View has %d newlines, want %d", rows, m.visibleRows())
	}
}

func TestModel_View_OutOfBoundsPositions(t *testing.T) {
	m := testModel(80)
	m.PetPosX, m.PetPosY = -5, 100
	m.TargetPosX, m.TargetPosY = 500, -1
	if view := m.View(); view == "" {
		t.Error("Expected a view even with out-of-range positions")
	}
}

func TestVisibleRowsMinimum(t *testing.T) {
	m := Model{TermHeight: 3}
	if got := m.visibleRows(); got != minVisibleRows {
		t.Errorf("visibleRows() = %d, want %d", got, minVisibleRows)
	}
}

func TestPositionsStayOnDrawnRows(t *testing.T) {
	m := testModel(80)
	m.PetPosY, m.TargetPosY = 100, 100
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	got := updated.(Model)

	// 8 visible rows, the last of which is the status line.
	if got.PetPosY != 6 || got.TargetPosY != 6 {
		t.Errorf("Rows = %d/%d, want both clamped to 6", got.PetPosY, got.TargetPosY)
	}
	if !strings.Contains(got.View(), "🦋") {
		t.Error("Target on the bottom row should still be drawn")
	}
}
