// Package ticker runs an action on a fixed cadence until stopped.
package ticker

import (
	"context"
	"log"
	"sync"
	"time"
)

// Loop calls an action once per interval. It does not know what the
// action does.
type Loop struct {
	name     string
	interval time.Duration
	action   func(time.Time)
	source   <-chan time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

// New creates a loop driven by a time.Ticker.
func New(name string, interval time.Duration, action func(time.Time)) *Loop {
	return &Loop{
		name:     name,
		interval: interval,
		action:   action,
		stopChan: make(chan struct{}),
	}
}

// WithSource drives the loop from ticks instead of wall-clock time.
func (l *Loop) WithSource(ticks <-chan time.Time) *Loop {
	l.source = ticks
	return l
}

// Start runs the loop and blocks until ctx is done or Stop is called.
// Call in a goroutine.
func (l *Loop) Start(ctx context.Context) {
	ticks := l.source
	if ticks == nil {
		t := time.NewTicker(l.interval)
		defer t.Stop()
		ticks = t.C
	}
	log.Printf("%s loop started (every %s)", l.name, l.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("%s loop stopped by context", l.name)
			return
		case <-l.stopChan:
			log.Printf("%s loop stopped", l.name)
			return
		case now, ok := <-ticks:
			if !ok {
				return
			}
			l.action(now)
		}
	}
}

// Stop ends the loop. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}
