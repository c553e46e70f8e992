// Package timer implements the focus/break countdown state machine.
package timer

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// Mode is one of the three session kinds.
type Mode string

const (
	Focus      Mode = "focus"
	ShortBreak Mode = "shortBreak"
	LongBreak  Mode = "longBreak"
)

var (
	ErrInvalidDuration = errors.New("duration must be a positive number of seconds")
	ErrInvalidMode     = errors.New("invalid timer mode")
)

// Modes lists every mode in tab order.
func Modes() []Mode {
	return []Mode{Focus, ShortBreak, LongBreak}
}

// Label is the human-readable name of m.
func (m Mode) Label() string {
	switch m {
	case Focus:
		return "Focus"
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return string(m)
	}
}

// ParseMode accepts the mode names plus a few short aliases.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus", "f", "pomodoro":
		return Focus, nil
	case "shortBreak", "short", "s":
		return ShortBreak, nil
	case "longBreak", "long", "l":
		return LongBreak, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Durations maps each mode to its length in seconds.
type Durations struct {
	Focus      int
	ShortBreak int
	LongBreak  int
}

// DefaultDurations are 25, 5 and 15 minutes.
func DefaultDurations() Durations {
	return Durations{Focus: 1500, ShortBreak: 300, LongBreak: 900}
}

// FromDurations converts time.Durations, truncating to whole seconds.
func FromDurations(focus, short, long time.Duration) Durations {
	return Durations{
		Focus:      int(focus / time.Second),
		ShortBreak: int(short / time.Second),
		LongBreak:  int(long / time.Second),
	}
}

// For returns the configured length of mode.
func (d Durations) For(m Mode) int {
	switch m {
	case ShortBreak:
		return d.ShortBreak
	case LongBreak:
		return d.LongBreak
	default:
		return d.Focus
	}
}

// Validate rejects any non-positive length.
func (d Durations) Validate() error {
	if d.Focus <= 0 || d.ShortBreak <= 0 || d.LongBreak <= 0 {
		return fmt.Errorf("%w: got %d/%d/%d", ErrInvalidDuration, d.Focus, d.ShortBreak, d.LongBreak)
	}
	return nil
}

// Completion describes a session that just ran out.
type Completion struct {
	Mode            Mode
	DurationSeconds int
	Next            Mode
}

// Engine owns the countdown. It is not safe for concurrent use; the
// owner serializes access.
type Engine struct {
	mode      Mode
	remaining int
	armed     int
	running   bool
	durations Durations
}

// New returns a paused engine in Focus mode. Invalid durations fall back
// to the defaults.
func New(d Durations) *Engine {
	if err := d.Validate(); err != nil {
		log.Printf("Ignoring timer durations: %v", err)
		d = DefaultDurations()
	}
	e := &Engine{mode: Focus, durations: d}
	e.arm()
	return e
}

func (e *Engine) arm() {
	e.armed = e.durations.For(e.mode)
	e.remaining = e.armed
}

func (e *Engine) Mode() Mode           { return e.mode }
func (e *Engine) Remaining() int       { return e.remaining }
func (e *Engine) Running() bool        { return e.running }
func (e *Engine) Durations() Durations { return e.durations }

// Start resumes the countdown. It reports whether anything changed.
func (e *Engine) Start() bool {
	if e.running || e.remaining <= 0 {
		return false
	}
	e.running = true
	return true
}

// Pause stops the countdown, keeping the remaining time.
func (e *Engine) Pause() {
	e.running = false
}

// Toggle starts a paused engine or pauses a running one.
func (e *Engine) Toggle() {
	if e.running {
		e.Pause()
		return
	}
	e.Start()
}

// Reset pauses and rearms the current mode.
func (e *Engine) Reset() {
	e.running = false
	e.arm()
}

// SwitchMode discards the current countdown and arms m, paused.
func (e *Engine) SwitchMode(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	e.mode = m
	e.running = false
	e.arm()
	log.Printf("Switched to %s (%ds)", m.Label(), e.remaining)
	return nil
}

// Tick advances a running countdown by one second. When it reaches zero
// the engine completes and the next mode is armed, paused.
func (e *Engine) Tick() (Completion, bool) {
	if !e.running {
		return Completion{}, false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining > 0 {
		return Completion{}, false
	}
	return e.complete(), true
}

// ForceComplete finishes the current session immediately.
func (e *Engine) ForceComplete() Completion {
	e.running = true
	e.remaining = 0
	return e.complete()
}

// complete never selects LongBreak: a long break is only reachable by
// SwitchMode.
func (e *Engine) complete() Completion {
	c := Completion{Mode: e.mode, DurationSeconds: e.armed, Next: Focus}
	if e.mode == Focus {
		c.Next = ShortBreak
	}
	e.running = false
	e.mode = c.Next
	e.arm()
	log.Printf("%s complete after %ds, next up %s", c.Mode.Label(), c.DurationSeconds, c.Next.Label())
	return c
}

// UpdateDurations replaces the durations. A paused engine is rearmed with
// the new length; a running one keeps counting but never exceeds it.
func (e *Engine) UpdateDurations(d Durations) error {
	if err := d.Validate(); err != nil {
		return err
	}
	e.durations = d
	if !e.running {
		e.arm()
		return nil
	}
	limit := d.For(e.mode)
	if e.remaining > limit {
		e.remaining = limit
	}
	if e.armed > limit {
		e.armed = limit
	}
	return nil
}

// Progress is the percentage of the armed session already elapsed.
func (e *Engine) Progress() float64 {
	if e.armed <= 0 {
		return 0
	}
	return float64(e.armed-e.remaining) / float64(e.armed) * 100
}

// Format renders seconds as MM:SS. Minutes are not wrapped into hours.
func Format(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
