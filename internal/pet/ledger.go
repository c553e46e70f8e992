package pet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// Rejections. None of them mutate the profile.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPetSatiated       = errors.New("pet is already full")
	ErrAlreadyUnlocked   = errors.New("pet already unlocked")
	ErrNotUnlocked       = errors.New("pet not unlocked")
	ErrUnknownPet        = errors.New("unknown pet")
)

// Ledger applies every profile mutation. Each operation is applied to a
// copy, persisted, and only then committed, so a rejected or unsaved
// operation leaves the profile exactly as it was.
type Ledger struct {
	mu      sync.Mutex
	blobs   Blobs
	profile Profile
}

func NewLedger(blobs Blobs, p Profile) *Ledger {
	return &Ledger{blobs: blobs, profile: p.Clone()}
}

// Profile returns a snapshot of the current profile.
func (l *Ledger) Profile() Profile {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.profile.Clone()
}

func (l *Ledger) modify(ctx context.Context, f func(*Profile) error) (Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.profile.Clone()
	if err := f(&next); err != nil {
		return l.profile.Clone(), err
	}
	if err := SaveProfile(ctx, l.blobs, next); err != nil {
		return l.profile.Clone(), err
	}
	l.profile = next
	return next.Clone(), nil
}

// ApplyFocusReward credits a completed focus session. It is a credit, so
// only a persistence failure can reject it.
func (l *Ledger) ApplyFocusReward(ctx context.Context, durationSeconds, reward int) (Profile, error) {
	return l.modify(ctx, func(p *Profile) error {
		p.Coins += max(reward, 0)
		p.TotalFocusMinutes += float64(max(durationSeconds, 0)) / 60
		log.Printf("Focus reward: +%d coins (now %d), total focus %.1f min", reward, p.Coins, p.TotalFocusMinutes)
		return nil
	})
}

// Feed spends FeedCost coins for FeedFullness fullness.
func (l *Ledger) Feed(ctx context.Context) (Profile, error) {
	return l.FeedWith(ctx, FeedCost, FeedFullness)
}

// FeedWith spends cost coins to raise fullness by gain, capped at MaxFullness.
func (l *Ledger) FeedWith(ctx context.Context, cost, gain int) (Profile, error) {
	return l.modify(ctx, func(p *Profile) error {
		if p.Coins < cost {
			log.Printf("Feed rejected: %d coins, need %d", p.Coins, cost)
			return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, p.Coins, cost)
		}
		if p.PetFullness >= MaxFullness {
			log.Printf("Feed rejected: fullness already %d", p.PetFullness)
			return ErrPetSatiated
		}
		p.Coins -= cost
		p.PetFullness = min(MaxFullness, p.PetFullness+gain)
		log.Printf("Fed pet. Coins now %d, fullness now %d", p.Coins, p.PetFullness)
		return nil
	})
}

// PurchasePet unlocks def in exchange for its price.
func (l *Ledger) PurchasePet(ctx context.Context, def Definition) (Profile, error) {
	return l.modify(ctx, func(p *Profile) error {
		if p.Coins < def.Price {
			log.Printf("Purchase of %s rejected: %d coins, price %d", def.ID, p.Coins, def.Price)
			return fmt.Errorf("%w: have %d, %s costs %d", ErrInsufficientFunds, p.Coins, def.Name, def.Price)
		}
		if p.IsUnlocked(def.ID) {
			return fmt.Errorf("%w: %s", ErrAlreadyUnlocked, def.Name)
		}
		p.Coins -= def.Price
		p.UnlockedPetIDs = append(p.UnlockedPetIDs, def.ID)
		log.Printf("Purchased %s for %d coins. Coins now %d", def.ID, def.Price, p.Coins)
		return nil
	})
}

// Buy looks petID up in the catalog and purchases it.
func (l *Ledger) Buy(ctx context.Context, petID string) (Profile, error) {
	def, ok := LookupPet(petID)
	if !ok {
		return l.Profile(), fmt.Errorf("%w: %q", ErrUnknownPet, petID)
	}
	return l.PurchasePet(ctx, def)
}

// EquipPet makes an unlocked pet the active one.
func (l *Ledger) EquipPet(ctx context.Context, petID string) (Profile, error) {
	return l.modify(ctx, func(p *Profile) error {
		if !p.IsUnlocked(petID) {
			return fmt.Errorf("%w: %q", ErrNotUnlocked, petID)
		}
		p.ActivePetID = petID
		log.Printf("Equipped %s", petID)
		return nil
	})
}

// Decay lowers fullness by amount, stopping at MinFullness. At the floor
// nothing is written. Unlike the other operations the step is kept in
// memory even when the save fails; the next successful save persists it.
func (l *Ledger) Decay(ctx context.Context, amount int) (Profile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.profile.PetFullness <= MinFullness {
		return l.profile.Clone(), nil
	}
	l.profile.PetFullness = max(MinFullness, l.profile.PetFullness-amount)
	log.Printf("Fullness decreased to %d", l.profile.PetFullness)
	if err := SaveProfile(ctx, l.blobs, l.profile); err != nil {
		return l.profile.Clone(), err
	}
	return l.profile.Clone(), nil
}
