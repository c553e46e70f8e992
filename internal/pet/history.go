package pet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records one completed timer session.
type HistoryEntry struct {
	ID              string    `json:"id"`
	Mode            string    `json:"mode"`
	DurationSeconds int       `json:"durationSeconds"`
	CoinsEarned     int       `json:"coinsEarned"`
	CompletedAt     time.Time `json:"completedAt"`
}

// History keeps the most recent MaxHistoryEntries sessions in one blob.
type History struct {
	mu    sync.Mutex
	blobs Blobs
}

func NewHistory(blobs Blobs) *History {
	return &History{blobs: blobs}
}

// Record appends a completed session.
func (h *History) Record(ctx context.Context, mode string, durationSeconds, coins int) (HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		log.Printf("Error loading history: %v. Starting a new history.", err)
		entries = nil
	}

	entry := HistoryEntry{
		ID:              uuid.NewString(),
		Mode:            mode,
		DurationSeconds: durationSeconds,
		CoinsEarned:     coins,
		CompletedAt:     TimeNow(),
	}
	entries = append(entries, entry)
	if len(entries) > MaxHistoryEntries {
		entries = entries[len(entries)-MaxHistoryEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return entry, fmt.Errorf("encode history: %w", err)
	}
	if err := h.blobs.Set(ctx, HistoryKey, data); err != nil {
		return entry, fmt.Errorf("save history: %w", err)
	}
	return entry, nil
}

// List returns recorded sessions, newest first.
func (h *History) List(ctx context.Context) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (h *History) load(ctx context.Context) ([]HistoryEntry, error) {
	data, err := h.blobs.Get(ctx, HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}
