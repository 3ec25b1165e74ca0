// Package youtube finds one video per course module through the YouTube
// Data API, rotating through a pool of quota-limited API keys.
package youtube

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// ErrNoCredentials is returned when the pool was built with no usable keys.
var ErrNoCredentials = errors.New("youtube: no API credentials available")

// KeyPool holds an ordered set of interchangeable API keys. The active key
// rotates on quota exhaustion and resets to the first key each calendar day.
type KeyPool struct {
	mu        sync.Mutex
	keys      []string
	index     int
	lastReset time.Time
	now       func() time.Time
}

// NewKeyPool builds a pool from raw key values, keeping only non-blank
// entries and dropping duplicates, order preserved.
func NewKeyPool(raw []string) *KeyPool {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	p := &KeyPool{keys: keys, now: time.Now}
	p.lastReset = p.now()
	if len(keys) == 0 {
		slog.Warn("youtube key pool is empty, video lookups disabled")
	} else {
		slog.Info("youtube key pool initialized", "keys", len(keys))
	}
	return p
}

// Current returns the active key, first applying the daily reset check.
func (p *KeyPool) Current() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return "", ErrNoCredentials
	}
	today := p.now()
	next := resetIndex(today, p.lastReset, p.index)
	if next != p.index {
		slog.Info("new day, resetting to first API key", "was", p.index)
		p.index = next
	}
	p.lastReset = today
	return p.keys[p.index], nil
}

// Rotate advances the active key, wrapping around the pool.
func (p *KeyPool) Rotate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return
	}
	p.index = (p.index + 1) % len(p.keys)
	slog.Info("rotated to API key", "index", p.index)
}

// Size returns the number of usable keys in the pool.
func (p *KeyPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

// resetIndex computes the active index after a day-rollover check: if the
// calendar day advanced since lastReset the index resets to 0, otherwise it
// is unchanged.
func resetIndex(today, lastReset time.Time, index int) int {
	ty, tm, td := today.Date()
	ly, lm, ld := lastReset.Date()
	if ty != ly || tm != lm || td != ld {
		return 0
	}
	return index
}
