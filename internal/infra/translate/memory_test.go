package translate

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCachePutGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, ok := cache.Get(ctx, "detection:welcome", "af")
	assert.False(t, ok)

	cache.Put(ctx, "detection:welcome", "af", "Welkom")
	got, ok := cache.Get(ctx, "detection:welcome", "af")
	assert.True(t, ok)
	assert.Equal(t, "Welkom", got)
}

func TestMemoryCacheFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	cache.Put(ctx, "ui:welcome", "zu", "Siyakwamukela")
	cache.Put(ctx, "ui:welcome", "zu", "something else")

	got, _ := cache.Get(ctx, "ui:welcome", "zu")
	assert.Equal(t, "Siyakwamukela", got)
}

func TestMemoryCacheKeysDoNotCollideAcrossLanguages(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	cache.Put(ctx, "ui:welcome", "af", "Welkom")
	cache.Put(ctx, "ui:welcome", "nl", "Welkom bij")

	af, _ := cache.Get(ctx, "ui:welcome", "af")
	nl, _ := cache.Get(ctx, "ui:welcome", "nl")
	assert.Equal(t, "Welkom", af)
	assert.Equal(t, "Welkom bij", nl)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Put(ctx, "ui:welcome", "xh", "Wamkelekile")
			cache.Get(ctx, "ui:welcome", "xh")
		}()
	}
	wg.Wait()

	got, ok := cache.Get(ctx, "ui:welcome", "xh")
	assert.True(t, ok)
	assert.Equal(t, "Wamkelekile", got)
}
