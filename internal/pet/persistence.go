package pet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Blobs is the durable key/value storage the profile lives in.
type Blobs interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// LoadProfile loads the stored profile or creates a new one.
// Missing or unreadable data is never an error: the user starts fresh.
func LoadProfile(ctx context.Context, blobs Blobs) Profile {
	data, err := blobs.Get(ctx, ProfileKey)
	if err != nil {
		log.Printf("Error reading profile: %v. Starting with a new profile.", err)
		return NewProfile()
	}
	if data == nil {
		log.Printf("No saved profile. Starting with a new profile.")
		return NewProfile()
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Error loading profile: %v. Starting with a new profile.", err)
		return NewProfile()
	}

	p.repair()
	log.Printf("Loaded profile: %d coins, fullness %d, active pet %s", p.Coins, p.PetFullness, p.ActivePetID)
	return p
}

// SaveProfile overwrites the stored profile.
func SaveProfile(ctx context.Context, blobs Blobs, p Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := blobs.Set(ctx, ProfileKey, data); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
