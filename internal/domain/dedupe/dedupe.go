// Package dedupe tracks matches already counted so that a game reported by
// both participants' histories is tallied once.
package dedupe

import (
	"context"
	"sync"
	"time"
)

// Deduper records seen match keys.
type Deduper interface {
	// SeenAndRecord checks if key was seen and records it if not.
	// Returns true if key was already seen.
	SeenAndRecord(ctx context.Context, key Key) bool

	Size() int64
}

// Key identifies a match independently of which side reported it: the two
// participant keys in sorted order plus the match time.
type Key struct {
	Low  string
	High string
	At   time.Time
}

// MatchKey builds the key for a match between participants a and b at ts.
// MatchKey(a, b, ts) == MatchKey(b, a, ts).
func MatchKey(a, b string, ts time.Time) Key {
	if b < a {
		a, b = b, a
	}
	return Key{Low: a, High: b, At: ts.UTC()}
}

type inMemoryDeduper struct {
	mu       sync.Mutex
	seen     map[Key]struct{}
	capacity int
}

// NewInMemoryDeduper creates an unbounded in-memory deduper. Entries are never
// evicted: eviction would let a late duplicate be counted twice.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{capacity: 256}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[Key]struct{}, d.capacity)
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
