package translate

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
	"github.com/veriscan/veriscan-detection-service/internal/infra/metrics"
)

// TieredCache layers the process local cache over a durable one. Lookups
// prefer memory; durable hits are promoted so the database is touched at
// most once per (key, lang) per process.
type TieredCache struct {
	memory  port.TranslationCache
	durable port.TranslationCache
}

func NewTieredCache(memory, durable port.TranslationCache) *TieredCache {
	return &TieredCache{memory: memory, durable: durable}
}

func (t *TieredCache) Get(ctx context.Context, key, lang string) (string, bool) {
	if text, ok := t.memory.Get(ctx, key, lang); ok {
		metrics.TranslationCacheLookups.WithLabelValues("hit_memory").Inc()
		return text, true
	}
	if text, ok := t.durable.Get(ctx, key, lang); ok {
		metrics.TranslationCacheLookups.WithLabelValues("hit_durable").Inc()
		t.memory.Put(ctx, key, lang, text)
		return text, true
	}
	metrics.TranslationCacheLookups.WithLabelValues("miss").Inc()
	return "", false
}

func (t *TieredCache) Put(ctx context.Context, key, lang, text string) {
	t.memory.Put(ctx, key, lang, text)
	t.durable.Put(ctx, key, lang, text)
}
