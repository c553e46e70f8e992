package ui

import (
	"strings"
	"time"
)

// AnimationType represents the kind of reaction being played
type AnimationType int

const (
	AnimNone AnimationType = iota
	AnimFeed
	AnimReward
	AnimAdopt
)

// Animation holds the current animation state
type Animation struct {
	Type      AnimationType
	Frame     int
	StartTime time.Time
	// Emoji overrides the active pet in the frames.
	Emoji string
}

// petMarker is replaced by the active pet's emoji when a frame is drawn.
const petMarker = "{pet}"

// AnimationFrames contains the frames for each animation type
var AnimationFrames = map[AnimationType][]string{
	AnimFeed: {
		`
   🍖
     \
      {pet}
`,
		`

   🍖→{pet}

`,
		`

     {pet}
   *nom*
`,
		`

     {pet}
   Yummy! ❤️
`,
	},
	AnimReward: {
		`
     {pet}
`,
		`
   💰
     {pet}
`,
		`
   💰 💰
     {pet}
`,
		`
   💰 💰 💰
     {pet}
   Well done!
`,
	},
	AnimAdopt: {
		`
       🎁
`,
		`
      ✨🎁✨
`,
		`
    ✨ {pet} ✨
`,
		`
      {pet}
   New friend!
`,
	},
}

// AnimationFrameDuration is how long each frame displays
const AnimationFrameDuration = 250 * time.Millisecond

// GetAnimationFrame returns the current frame drawn with petEmoji
func GetAnimationFrame(anim Animation, petEmoji string) string {
	frames := AnimationFrames[anim.Type]
	if len(frames) == 0 {
		return ""
	}
	frame := frames[len(frames)-1]
	if anim.Frame < len(frames) {
		frame = frames[anim.Frame]
	}
	return strings.ReplaceAll(frame, petMarker, petEmoji)
}

// IsAnimationComplete returns true if the animation has finished
func IsAnimationComplete(anim Animation) bool {
	frames := AnimationFrames[anim.Type]
	return anim.Frame >= len(frames)
}

// AnimationTotalFrames returns the number of frames for an animation type
func AnimationTotalFrames(animType AnimationType) int {
	return len(AnimationFrames[animType])
}
