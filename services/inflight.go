package services

import "sync"

// inflightGuard rejects a second mutation for the same key while one is
// pending. Requests are rejected, never queued.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]bool)}
}

// begin reports false when a mutation for key is already running.
func (g *inflightGuard) begin(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[key] {
		return false
	}
	g.active[key] = true
	return true
}

func (g *inflightGuard) end(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}
