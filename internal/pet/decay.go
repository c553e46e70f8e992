package pet

import (
	"context"
	"log"
)

// Decayer applies one hunger step per tick, whether or not a timer session
// is running. The caller owns the cadence (DecayInterval).
type Decayer struct {
	ledger *Ledger
	amount int
}

func NewDecayer(ledger *Ledger) *Decayer {
	return &Decayer{ledger: ledger, amount: DecayAmount}
}

// Tick applies a single decay step and returns the resulting profile.
// A failed save is only logged: the pet still gets hungrier.
func (d *Decayer) Tick(ctx context.Context) Profile {
	p, err := d.ledger.Decay(ctx, d.amount)
	if err != nil {
		log.Printf("Error saving decay: %v", err)
	}
	return p
}
