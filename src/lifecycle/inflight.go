package lifecycle

import (
	"fmt"
	"sync"
)

// tracker is the single in-flight-operation set for the whole client.
// Views query it instead of keeping their own per-component processing state.
type tracker struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newTracker() *tracker {
	return &tracker{active: make(map[string]struct{})}
}

// begin claims a key. Returns false when a transition for the same key is
// already in flight.
func (t *tracker) begin(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, busy := t.active[key]; busy {
		return false
	}
	t.active[key] = struct{}{}
	return true
}

func (t *tracker) end(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, key)
}

func (t *tracker) has(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, busy := t.active[key]
	return busy
}

func requestKey(id uint64) string { return fmt.Sprintf("request:%d", id) }
func wallKey(id uint64) string    { return fmt.Sprintf("wall:%d", id) }
