// Package cache holds rendered page bodies keyed by request path so list pages
// are only rebuilt from storage after a write invalidates them.
package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	body     []byte
	storedAt time.Time
}

type Pages struct {
	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]uint64
	ttl     time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// NewPages returns an empty cache. A zero ttl keeps entries until they are
// revalidated.
func NewPages(ttl time.Duration, logger *zap.Logger) *Pages {
	return &Pages{
		entries: make(map[string]entry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

func (p *Pages) Get(path string) ([]byte, bool) {
	p.mu.RLock()
	e, ok := p.entries[path]
	p.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if p.ttl > 0 && p.now().Sub(e.storedAt) > p.ttl {
		p.mu.Lock()
		delete(p.entries, path)
		p.mu.Unlock()
		return nil, false
	}
	return e.body, true
}

// Generation reports how many times path has been revalidated. A render reads
// it before loading and hands it back to SetIfGeneration.
func (p *Pages) Generation(path string) uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gens[path]
}

// SetIfGeneration stores body only when path has not been revalidated since
// gen was read. It reports whether the body was stored.
func (p *Pages) SetIfGeneration(path string, gen uint64, body []byte) bool {
	stored := make([]byte, len(body))
	copy(stored, body)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gens[path] != gen {
		return false
	}
	p.entries[path] = entry{body: stored, storedAt: p.now()}
	return true
}

// Revalidate drops the snapshot for exactly one path. The next render of that
// path reads from storage again.
func (p *Pages) Revalidate(path string) {
	p.mu.Lock()
	_, existed := p.entries[path]
	delete(p.entries, path)
	p.gens[path]++
	p.mu.Unlock()

	p.logger.Debug("page revalidated", zap.String("path", path), zap.Bool("hadSnapshot", existed))
}
