package bus

import (
	"context"
	"sync"
)

// Memory is the in-process bus: a map from channel name to the latest
// payload, serialized through a single mutex. The lock is held only across
// the map access itself; payloads are copied on both sides so callers can
// never observe a value mutating under them.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemory creates an empty in-process bus.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Set overwrites the channel's value. Last write wins.
func (b *Memory) Set(_ context.Context, channel string, payload []byte) error {
	if err := validChannel(channel); err != nil {
		return err
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)

	b.mu.Lock()
	b.data[channel] = cp
	b.mu.Unlock()
	return nil
}

// Get returns the channel's current value, or ErrNoData if it was never set.
func (b *Memory) Get(_ context.Context, channel string) ([]byte, error) {
	if err := validChannel(channel); err != nil {
		return nil, err
	}

	b.mu.Lock()
	stored, ok := b.data[channel]
	b.mu.Unlock()

	if !ok {
		return nil, ErrNoData
	}
	cp := make([]byte, len(stored))
	copy(cp, stored)
	return cp, nil
}
