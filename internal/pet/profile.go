package pet

import (
	"log"
	"slices"
)

// Profile is the persisted gamification state for the single user.
type Profile struct {
	Coins             int      `json:"coins"`
	UnlockedPetIDs    []string `json:"unlockedPetIds"`
	ActivePetID       string   `json:"activePetId"`
	PetFullness       int      `json:"petFullness"`
	TotalFocusMinutes float64  `json:"totalFocusMinutes"`
}

// NewProfile creates a first-run profile with the starter pet.
func NewProfile() Profile {
	return Profile{
		Coins:             0,
		UnlockedPetIDs:    []string{StarterPetID},
		ActivePetID:       StarterPetID,
		PetFullness:       DefaultFullness,
		TotalFocusMinutes: 0,
	}
}

// IsUnlocked reports whether petID is owned.
func (p Profile) IsUnlocked(petID string) bool {
	return slices.Contains(p.UnlockedPetIDs, petID)
}

// Clone returns a deep copy; the unlocked list is not shared.
func (p Profile) Clone() Profile {
	c := p
	c.UnlockedPetIDs = slices.Clone(p.UnlockedPetIDs)
	return c
}

// repair restores the profile invariants on data that parsed but holds
// out-of-range values.
func (p *Profile) repair() {
	if p.Coins < 0 {
		log.Printf("Repairing profile: coins %d below zero", p.Coins)
		p.Coins = 0
	}
	if p.PetFullness < MinFullness || p.PetFullness > MaxFullness {
		log.Printf("Repairing profile: fullness %d out of range", p.PetFullness)
		p.PetFullness = max(MinFullness, min(p.PetFullness, MaxFullness))
	}
	if p.TotalFocusMinutes < 0 {
		p.TotalFocusMinutes = 0
	}

	unlocked := make([]string, 0, len(p.UnlockedPetIDs)+1)
	for _, id := range p.UnlockedPetIDs {
		if _, ok := LookupPet(id); ok && !slices.Contains(unlocked, id) {
			unlocked = append(unlocked, id)
		}
	}
	if !slices.Contains(unlocked, StarterPetID) {
		unlocked = append([]string{StarterPetID}, unlocked...)
	}
	p.UnlockedPetIDs = unlocked

	if !p.IsUnlocked(p.ActivePetID) {
		log.Printf("Repairing profile: active pet %q not unlocked", p.ActivePetID)
		p.ActivePetID = StarterPetID
	}
}
