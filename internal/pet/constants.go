package pet

import "time"

// Economy constants
const (
	StarterPetID = "cat"

	MaxFullness     = 100
	MinFullness     = 0
	DefaultFullness = 80

	FocusReward  = 25 // Flat coins per completed focus session
	FeedCost     = 10
	FeedFullness = 20

	DecayAmount   = 1           // Fullness lost per decay step
	DecayInterval = time.Minute // Real time between decay steps

	// Fullness thresholds for status display
	ContentThreshold = 80
	PeckishThreshold = 50
	HungryThreshold  = 30

	MaxHistoryEntries = 50
)

// Storage keys, one blob each
const (
	ProfileKey = "pomoPetState"
	HistoryKey = "pomoPetHistory"
)

// Status emojis
const (
	StatusEmojiHappy    = "😸"
	StatusEmojiContent  = "🙂"
	StatusEmojiPeckish  = "😼"
	StatusEmojiHungry   = "🙀"
	StatusEmojiStarving = "😿"
)
