package ui

import (
	"strings"
	"testing"
	"time"
)

func TestEveryReactionDrawsThePet(t *testing.T) {
	for _, animType := range []AnimationType{AnimFeed, AnimReward, AnimAdopt} {
		total := AnimationTotalFrames(animType)
		if total < 3 {
			t.Errorf("Reaction %v only has %d frames", animType, total)
		}

		last := GetAnimationFrame(Animation{Type: animType, Frame: total - 1}, "🐸")
		if !strings.Contains(last, "🐸") {
			t.Errorf("Final frame of %v does not show the pet: %q", animType, last)
		}
		for i, frame := range AnimationFrames[animType] {
			if strings.TrimSpace(frame) == "" {
				t.Errorf("Reaction %v has a blank frame %d", animType, i)
			}
		}
	}
}

func TestFrameMarkerReplaced(t *testing.T) {
	frame := GetAnimationFrame(Animation{Type: AnimFeed, Frame: 1}, "🐶")
	if strings.Contains(frame, petMarker) {
		t.Errorf("Marker left in frame %q", frame)
	}
	if !strings.Contains(frame, "🍖→🐶") {
		t.Errorf("Expected the dog to reach the food, got %q", frame)
	}
}

func TestFrameIndexPastEndHoldsLastFrame(t *testing.T) {
	last := AnimationTotalFrames(AnimReward) - 1
	want := GetAnimationFrame(Animation{Type: AnimReward, Frame: last}, "🐱")
	got := GetAnimationFrame(Animation{Type: AnimReward, Frame: last + 10}, "🐱")
	if got != want {
		t.Errorf("Expected the last frame to hold, got %q", got)
	}
	if !strings.Contains(got, "Well done!") {
		t.Errorf("Reward should end on praise, got %q", got)
	}

	if GetAnimationFrame(Animation{}, "🐱") != "" {
		t.Error("No reaction should draw nothing")
	}
}

func TestIsAnimationComplete(t *testing.T) {
	feedFrames := AnimationTotalFrames(AnimFeed)
	tests := []struct {
		name string
		anim Animation
		want bool
	}{
		{"first feed frame", Animation{Type: AnimFeed}, false},
		{"last feed frame", Animation{Type: AnimFeed, Frame: feedFrames - 1}, false},
		{"past the end", Animation{Type: AnimFeed, Frame: feedFrames}, true},
		{"idle", Animation{Type: AnimNone}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAnimationComplete(tt.anim); got != tt.want {
				t.Errorf("IsAnimationComplete = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReactionsFinishBeforeNextWander(t *testing.T) {
	for _, animType := range []AnimationType{AnimFeed, AnimReward, AnimAdopt} {
		length := time.Duration(AnimationTotalFrames(animType)) * AnimationFrameDuration
		if length >= WanderInterval {
			t.Errorf("Reaction %v lasts %s, longer than a wander step", animType, length)
		}
	}
}
