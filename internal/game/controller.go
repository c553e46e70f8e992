// Package game coordinates the timer and the pet ledger. The Controller is
// the only code that reads both to decide what a completed session earns.
package game

import (
	"context"
	"log"
	"sync"
	"time"

	"pomopet/internal/motivation"
	"pomopet/internal/pet"
	"pomopet/internal/ticker"
	"pomopet/internal/timer"
)

// DefaultMotivationTimeout bounds a single motivation fetch.
const DefaultMotivationTimeout = 8 * time.Second

// Options configure a Controller. Zero values select the defaults.
type Options struct {
	Durations         timer.Durations
	// Reward below 1 selects pet.FocusReward; config.Validate never lets
	// a configured value through that low.
	Reward            int
	MotivationTimeout time.Duration
	Provider          motivation.Provider
}

// Event reports a completed session.
type Event struct {
	Completion timer.Completion
	Profile    pet.Profile
	// Reward is the number of coins credited; 0 for breaks and failed saves.
	Reward int
	// Message is shown immediately; motivation arrives later on Messages.
	Message string
	// Err is set when the reward could not be saved.
	Err error
}

// Snapshot is a consistent view of timer and profile for rendering.
type Snapshot struct {
	Mode      timer.Mode
	Remaining int
	Running   bool
	Progress  float64
	Durations         timer.Durations
	Profile   pet.Profile
}

type Controller struct {
	mu      sync.Mutex
	engine  *timer.Engine
	ledger  *pet.Ledger
	decayer *pet.Decayer
	history *pet.History

	provider motivation.Provider
	reward   int
	timeout  time.Duration
	messages chan motivation.Message

	fetchCtx    context.Context
	cancelFetch context.CancelFunc
	fetches     sync.WaitGroup

	// Tick sources for Run; nil means wall-clock tickers.
	timerTicks <-chan time.Time
	decayTicks <-chan time.Time
}

func New(ledger *pet.Ledger, history *pet.History, opts Options) *Controller {
	if opts.Durations == (timer.Durations{}) {
		opts.Durations = timer.DefaultDurations()
	}
	if opts.Reward <= 0 {
		opts.Reward = pet.FocusReward
	}
	if opts.MotivationTimeout <= 0 {
		opts.MotivationTimeout = DefaultMotivationTimeout
	}
	if opts.Provider == nil {
		opts.Provider = motivation.Offline{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		engine:      timer.New(opts.Durations),
		ledger:      ledger,
		decayer:     pet.NewDecayer(ledger),
		history:     history,
		provider:    opts.Provider,
		reward:      opts.Reward,
		timeout:     opts.MotivationTimeout,
		messages:    make(chan motivation.Message, 1),
		fetchCtx:    ctx,
		cancelFetch: cancel,
	}
}

// Messages delivers motivation text for completed focus sessions. Only the
// newest undelivered message is kept.
func (c *Controller) Messages() <-chan motivation.Message {
	return c.messages
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Mode:      c.engine.Mode(),
		Remaining: c.engine.Remaining(),
		Running:   c.engine.Running(),
		Progress:  c.engine.Progress(),
		Durations: c.engine.Durations(),
		Profile:   c.ledger.Profile(),
	}
}

func (c *Controller) Profile() pet.Profile {
	return c.ledger.Profile()
}

func (c *Controller) Start() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.Start()
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Pause()
}

// Toggle starts or pauses and returns the new running state.
func (c *Controller) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Toggle()
	return c.engine.Running()
}

func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Reset()
}

func (c *Controller) SwitchMode(m timer.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.SwitchMode(m)
}

func (c *Controller) UpdateDurations(d timer.Durations) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.engine.UpdateDurations(d); err != nil {
		return err
	}
	log.Printf("Durations set to %d/%d/%d seconds", d.Focus, d.ShortBreak, d.LongBreak)
	return nil
}

// Tick advances the countdown by one second and settles a completion.
func (c *Controller) Tick(ctx context.Context) (Event, bool) {
	c.mu.Lock()
	done, ok := c.engine.Tick()
	c.mu.Unlock()
	if !ok {
		return Event{}, false
	}
	return c.settle(ctx, done), true
}

// ForceComplete finishes the current session now, as if it ran out.
func (c *Controller) ForceComplete(ctx context.Context) Event {
	c.mu.Lock()
	done := c.engine.ForceComplete()
	c.mu.Unlock()
	return c.settle(ctx, done)
}

// settle runs after the engine has already moved on to the next mode, so
// nothing here can hold up the timer.
func (c *Controller) settle(ctx context.Context, done timer.Completion) Event {
	ev := Event{Completion: done}

	if done.Mode != timer.Focus {
		ev.Message = motivation.BreakOver
		ev.Profile = c.ledger.Profile()
		c.record(ctx, done, 0)
		return ev
	}

	p, err := c.ledger.ApplyFocusReward(ctx, done.DurationSeconds, c.reward)
	ev.Profile = p
	if err != nil {
		log.Printf("Error saving focus reward: %v", err)
		ev.Err = err
	} else {
		ev.Reward = c.reward
	}
	c.record(ctx, done, ev.Reward)

	minutes := done.DurationSeconds / 60
	petName := pet.ActiveDefinition(p).Name
	ev.Message = "Session complete! Waiting for " + petName + "..."
	c.fetches.Add(1)
	go func() {
		defer c.fetches.Done()
		c.deliver(motivation.Fetch(c.fetchCtx, c.provider, c.timeout, minutes, petName))
	}()
	return ev
}

func (c *Controller) record(ctx context.Context, done timer.Completion, coins int) {
	if c.history == nil {
		return
	}
	if _, err := c.history.Record(ctx, string(done.Mode), done.DurationSeconds, coins); err != nil {
		log.Printf("Error saving history: %v", err)
	}
}

func (c *Controller) deliver(msg motivation.Message) {
	for {
		select {
		case c.messages <- msg:
			return
		default:
		}
		// Drop the stale message.
		select {
		case <-c.messages:
		default:
		}
	}
}

func (c *Controller) Feed(ctx context.Context) (pet.Profile, error) {
	return c.ledger.Feed(ctx)
}

func (c *Controller) Buy(ctx context.Context, petID string) (pet.Profile, error) {
	return c.ledger.Buy(ctx, petID)
}

func (c *Controller) Equip(ctx context.Context, petID string) (pet.Profile, error) {
	return c.ledger.EquipPet(ctx, petID)
}

// Decay applies one hunger step.
func (c *Controller) Decay(ctx context.Context) pet.Profile {
	return c.decayer.Tick(ctx)
}

// Run drives the timer every second and decay every pet.DecayInterval
// until ctx is done. onEvent, if set, sees every completion.
func (c *Controller) Run(ctx context.Context, onEvent func(Event)) {
	timerLoop := ticker.New("timer", time.Second, func(time.Time) {
		if ev, ok := c.Tick(ctx); ok && onEvent != nil {
			onEvent(ev)
		}
	}).WithSource(c.timerTicks)
	decayLoop := ticker.New("decay", pet.DecayInterval, func(time.Time) {
		c.Decay(ctx)
	}).WithSource(c.decayTicks)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		timerLoop.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		decayLoop.Start(ctx)
	}()

	<-ctx.Done()
	timerLoop.Stop()
	decayLoop.Stop()
	wg.Wait()
}

// Close abandons pending motivation fetches and waits for them to exit.
func (c *Controller) Close() {
	c.cancelFetch()
	c.fetches.Wait()
}
