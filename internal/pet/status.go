package pet

// GetStatus returns the status emoji for the profile's pet
func GetStatus(p Profile) string {
	switch {
	case p.PetFullness >= ContentThreshold:
		return StatusEmojiHappy
	case p.PetFullness >= PeckishThreshold:
		return StatusEmojiContent
	case p.PetFullness >= HungryThreshold:
		return StatusEmojiPeckish
	case p.PetFullness > MinFullness:
		return StatusEmojiHungry
	default:
		return StatusEmojiStarving
	}
}

// GetStatusWithLabel returns status with a text label for the UI
func GetStatusWithLabel(p Profile) string {
	status := GetStatus(p)

	switch status {
	case StatusEmojiHappy:
		return status + " Happy"
	case StatusEmojiContent:
		return status + " Content"
	case StatusEmojiPeckish:
		return status + " Peckish"
	case StatusEmojiHungry:
		return status + " Hungry"
	default:
		return status + " Starving"
	}
}

// FeedHint explains why feeding would be rejected, or returns "" if it
// would succeed.
func FeedHint(p Profile) string {
	if p.Coins < FeedCost {
		return "Need 10 coins!"
	}
	if p.PetFullness >= MaxFullness {
		return "I'm full!"
	}
	return ""
}
