package motivation

import (
	"context"
	"log"
	"time"
)

// Message is the flavor text delivered after a focus session.
type Message struct {
	Motivation string
	Activity   string
}

// Fetch asks p for a motivation line and a break activity, bounded by
// timeout. It never fails: empty answers and errors become canned text.
func Fetch(ctx context.Context, p Provider, timeout time.Duration, minutes int, petName string) Message {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}
	motivationCh := make(chan result, 1)
	activityCh := make(chan result, 1)

	go func() {
		text, err := p.StudyMotivation(ctx, minutes, petName)
		motivationCh <- result{text, err}
	}()
	go func() {
		text, err := p.BreakActivity(ctx)
		activityCh <- result{text, err}
	}()

	var msg Message
	select {
	case r := <-motivationCh:
		msg.Motivation = pick(r.text, r.err, EmptyMotivation, FailedMotivation(minutes), "motivation")
	case <-ctx.Done():
		msg.Motivation = pick("", ctx.Err(), EmptyMotivation, FailedMotivation(minutes), "motivation")
	}
	select {
	case r := <-activityCh:
		msg.Activity = pick(r.text, r.err, EmptyActivity, FailedActivity, "break activity")
	case <-ctx.Done():
		msg.Activity = pick("", ctx.Err(), EmptyActivity, FailedActivity, "break activity")
	}
	return msg
}

func pick(text string, err error, empty, failed, what string) string {
	if err != nil {
		log.Printf("Error fetching %s: %v", what, err)
		return failed
	}
	if text == "" {
		return empty
	}
	return text
}
