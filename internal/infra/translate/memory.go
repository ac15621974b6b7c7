package translate

import (
	"context"
	"sync"
)

// MemoryCache is a process local translation cache. It is the default when
// no database is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (m *MemoryCache) Get(_ context.Context, key, lang string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.entries[lang+"\x00"+key]
	return text, ok
}

// Put stores text under (key, lang) unless an entry already exists. First
// write wins so concurrent translators cannot flap a cached value.
func (m *MemoryCache) Put(_ context.Context, key, lang, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := lang + "\x00" + key
	if _, exists := m.entries[k]; exists {
		return
	}
	m.entries[k] = text
}
