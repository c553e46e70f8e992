// Package motivation fetches short flavor messages shown after a session.
// Providers may fail or time out; callers always get a fallback string.
package motivation

import (
	"context"
	"errors"
	"fmt"
)

var ErrProviderUnavailable = errors.New("motivation provider unavailable")

// Provider produces flavor text.
type Provider interface {
	// StudyMotivation is a message from the pet after a focus session.
	StudyMotivation(ctx context.Context, minutes int, petName string) (string, error)
	// BreakActivity suggests something to do during the break.
	BreakActivity(ctx context.Context) (string, error)
}

// Canned text used when the provider has nothing to say.
const (
	EmptyMotivation = "Great job! Keep it up!"
	EmptyActivity   = "Stretch your arms and look out a window."
	FailedActivity  = "Stand up and stretch your legs!"
	BreakOver       = "Break time is over! Ready to focus again?"
)

// FailedMotivation is shown when the provider errors or times out.
func FailedMotivation(minutes int) string {
	return fmt.Sprintf("Meow! (Translation: Great job focusing for %d minutes!)", minutes)
}

// Offline is used when no API key is configured.
type Offline struct{}

func (Offline) StudyMotivation(context.Context, int, string) (string, error) {
	return "", ErrProviderUnavailable
}

func (Offline) BreakActivity(context.Context) (string, error) {
	return "", ErrProviderUnavailable
}
