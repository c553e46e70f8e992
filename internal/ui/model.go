package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pomopet/internal/game"
	"pomopet/internal/motivation"
	"pomopet/internal/pet"
	"pomopet/internal/timer"
)

// WanderInterval is how often the pet may move around the playground.
const WanderInterval = 3500 * time.Millisecond

type screen int

const (
	screenTimer screen = iota
	screenStore
	screenDev
)

// Model represents the app state
type Model struct {
	Game     *game.Controller
	Snapshot game.Snapshot

	Screen      screen
	StoreChoice int
	DevChoice   int

	Message        string
	MessageExpires time.Time
	Motivation     motivation.Message
	Position       float64
	Animation      Animation
	Quitting       bool

	ctx context.Context
	// timerGen tags countdown ticks; ticks from an older run are dropped.
	timerGen int
}

type secondTickMsg struct {
	gen int
}
type decayTickMsg time.Time
type wanderTickMsg time.Time
type motivationMsg motivation.Message
type animTickMsg struct {
	started time.Time
}

// NewModel creates a new app model around c
func NewModel(ctx context.Context, c *game.Controller) Model {
	return Model{
		Game:     c,
		Snapshot: c.Snapshot(),
		Position: 50,
		ctx:      ctx,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(decayTick(), wanderTick(), waitForMotivation(m.Game.Messages()))
}

func secondTick(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return secondTickMsg{gen: gen}
	})
}

func decayTick() tea.Cmd {
	return tea.Tick(pet.DecayInterval, func(t time.Time) tea.Msg {
		return decayTickMsg(t)
	})
}

func wanderTick() tea.Cmd {
	return tea.Tick(WanderInterval, func(t time.Time) tea.Msg {
		return wanderTickMsg(t)
	})
}

func waitForMotivation(ch <-chan motivation.Message) tea.Cmd {
	return func() tea.Msg {
		return motivationMsg(<-ch)
	}
}

func animTick(start time.Time) tea.Cmd {
	return tea.Tick(AnimationFrameDuration, func(t time.Time) tea.Msg {
		return animTickMsg{started: start}
	})
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Screen {
		case screenStore:
			return m.updateStore(msg)
		case screenDev:
			return m.updateDev(msg)
		}
		return m.updateTimer(msg)

	case secondTickMsg:
		if msg.gen != m.timerGen {
			return m, nil
		}
		ev, done := m.Game.Tick(m.ctx)
		m.Snapshot = m.Game.Snapshot()
		if done {
			return m, m.completed(ev)
		}
		if !m.Snapshot.Running {
			return m, nil
		}
		return m, secondTick(m.timerGen)

	case decayTickMsg:
		m.Game.Decay(m.ctx)
		m.Snapshot = m.Game.Snapshot()
		return m, decayTick()

	case wanderTickMsg:
		if m.Animation.Type != AnimFeed {
			m.Position = pet.Wander(m.Position)
		}
		return m, wanderTick()

	case motivationMsg:
		m.Motivation = motivation.Message(msg)
		return m, waitForMotivation(m.Game.Messages())

	case animTickMsg:
		// Drop ticks that belong to an older animation
		if m.Animation.Type == AnimNone || !m.Animation.StartTime.Equal(msg.started) {
			return m, nil
		}

		m.Animation.Frame++
		if IsAnimationComplete(m.Animation) {
			m.Animation = Animation{}
			return m, nil
		}

		return m, animTick(m.Animation.StartTime)
	}

	return m, nil
}

func (m Model) updateTimer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "enter":
		return m, m.toggle()
	case "r":
		m.Game.Reset()
		m.timerGen++
	case "1", "2", "3":
		mode := timer.Modes()[int(msg.String()[0]-'1')]
		if err := m.Game.SwitchMode(mode); err != nil {
			log.Printf("Error switching mode: %v", err)
		}
		m.timerGen++
	case "f":
		if m.feed() {
			m.Snapshot = m.Game.Snapshot()
			return m, animTick(m.Animation.StartTime)
		}
	case "s":
		m.Screen = screenStore
		m.StoreChoice = 0
	case "d":
		m.Screen = screenDev
		m.DevChoice = 0
	case "esc":
		m.Motivation = motivation.Message{}
	}
	m.Snapshot = m.Game.Snapshot()
	return m, nil
}

func (m *Model) toggle() tea.Cmd {
	running := m.Game.Toggle()
	m.timerGen++
	m.Snapshot = m.Game.Snapshot()
	if !running {
		return nil
	}
	return secondTick(m.timerGen)
}

func (m Model) updateStore(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	defs := pet.Catalog()
	switch msg.String() {
	case "s", "esc":
		m.Screen = screenTimer
	case "up", "k":
		if m.StoreChoice > 0 {
			m.StoreChoice--
		}
	case "down", "j":
		if m.StoreChoice < len(defs)-1 {
			m.StoreChoice++
		}
	case "enter", " ":
		if m.adoptOrEquip(defs[m.StoreChoice]) {
			m.Snapshot = m.Game.Snapshot()
			return m, animTick(m.Animation.StartTime)
		}
	}
	m.Snapshot = m.Game.Snapshot()
	return m, nil
}

var devPresets = []struct {
	label     string
	durations timer.Durations
}{
	{"Default (25m / 5m / 15m)", timer.DefaultDurations()},
	{"Quick (1m / 1m / 2m)", timer.Durations{Focus: 60, ShortBreak: 60, LongBreak: 120}},
	{"Instant (10s / 5s / 10s)", timer.Durations{Focus: 10, ShortBreak: 5, LongBreak: 10}},
}

// Options after the presets.
const (
	devForceComplete = "Force Timer Complete"
	devBack          = "Back"
)

func devMenuOptions() []string {
	opts := make([]string, 0, len(devPresets)+2)
	for _, p := range devPresets {
		opts = append(opts, p.label)
	}
	return append(opts, devForceComplete, devBack)
}

func (m Model) updateDev(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	opts := devMenuOptions()
	switch msg.String() {
	case "d", "esc":
		m.Screen = screenTimer
	case "up", "k":
		if m.DevChoice > 0 {
			m.DevChoice--
		}
	case "down", "j":
		if m.DevChoice < len(opts)-1 {
			m.DevChoice++
		}
	case "enter", " ":
		switch {
		case m.DevChoice < len(devPresets):
			d := devPresets[m.DevChoice].durations
			if err := m.Game.UpdateDurations(d); err != nil {
				m.setMessage("⚠️ " + err.Error())
			} else if m.Snapshot.Running {
				m.setMessage("🛠️ Durations updated! Reset the timer to apply.")
			} else {
				m.setMessage("🛠️ Durations updated!")
			}
		case opts[m.DevChoice] == devForceComplete:
			m.Screen = screenTimer
			ev := m.Game.ForceComplete(m.ctx)
			m.timerGen++
			m.Snapshot = m.Game.Snapshot()
			return m, m.completed(ev)
		default:
			m.Screen = screenTimer
		}
	}
	m.Snapshot = m.Game.Snapshot()
	return m, nil
}

// completed reacts to a finished session. The countdown has already moved
// to the next mode and is paused.
func (m *Model) completed(ev game.Event) tea.Cmd {
	m.Snapshot = m.Game.Snapshot()
	if ev.Completion.Mode != timer.Focus {
		m.Motivation = motivation.Message{}
		m.setMessage("⏰ " + ev.Message)
		return nil
	}
	if ev.Err != nil {
		m.setMessage("⚠️ Couldn't save your reward: " + ev.Err.Error())
		return nil
	}
	m.Motivation = motivation.Message{}
	m.setMessage(fmt.Sprintf("🎉 Focus complete! +%d coins", ev.Reward))
	m.startAnimation(AnimReward)
	return animTick(m.Animation.StartTime)
}

func (m *Model) setMessage(msg string) {
	m.Message = msg
	m.MessageExpires = pet.TimeNow().Add(3 * time.Second)
}

func (m *Model) startAnimation(animType AnimationType) {
	m.Animation = Animation{
		Type:      animType,
		Frame:     0,
		StartTime: pet.TimeNow(),
	}
}

func (m *Model) feed() bool {
	_, err := m.Game.Feed(m.ctx)
	switch {
	case errors.Is(err, pet.ErrInsufficientFunds):
		m.setMessage("Need 10 coins!")
		return false
	case errors.Is(err, pet.ErrPetSatiated):
		m.setMessage("I'm full!")
		return false
	case err != nil:
		m.setMessage("⚠️ " + err.Error())
		return false
	}
	m.setMessage("Yummy! ❤️")
	m.startAnimation(AnimFeed)
	return true
}

// adoptOrEquip buys a locked pet, or equips an owned one.
func (m *Model) adoptOrEquip(def pet.Definition) bool {
	p := m.Game.Profile()
	if p.IsUnlocked(def.ID) {
		if p.ActivePetID == def.ID {
			m.setMessage(def.Emoji + " " + def.Name + " is already with you")
			return false
		}
		if _, err := m.Game.Equip(m.ctx, def.ID); err != nil {
			m.setMessage("⚠️ " + err.Error())
			return false
		}
		m.setMessage(def.Emoji + " " + def.Name + " is now your buddy!")
		return false
	}

	if _, err := m.Game.Buy(m.ctx, def.ID); err != nil {
		if errors.Is(err, pet.ErrInsufficientFunds) {
			m.setMessage(fmt.Sprintf("💸 %s costs %d coins", def.Name, def.Price))
		} else {
			m.setMessage("⚠️ " + err.Error())
		}
		return false
	}
	m.setMessage(fmt.Sprintf("🎁 Adopted %s! Press enter again to equip.", def.Name))
	m.startAnimation(AnimAdopt)
	m.Animation.Emoji = def.Emoji
	return true
}
