package i18n

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTranslator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubTranslator) Translate(_ context.Context, text, lang string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return "[" + lang + "] " + text, nil
}

type mapCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]string)}
}

func (c *mapCache) Get(_ context.Context, key, lang string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[lang+"|"+key]
	return v, ok
}

func (c *mapCache) Put(_ context.Context, key, lang, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[lang+"|"+key]; !exists {
		c.entries[lang+"|"+key] = text
	}
}

func TestMessageEnglishSkipsTranslator(t *testing.T) {
	tr := &stubTranslator{}
	l := NewLocalizer(tr, newMapCache(), zap.NewNop())

	msg := l.Message(context.Background(), "ai_detected", "en", CategoryUI)
	assert.Equal(t, "AI-generated content detected", msg)
	assert.Equal(t, 0, tr.calls)
}

func TestMessageTranslatesAndCaches(t *testing.T) {
	tr := &stubTranslator{}
	l := NewLocalizer(tr, newMapCache(), zap.NewNop())
	ctx := context.Background()

	first := l.Message(ctx, "ai_detected", "zu", CategoryUI)
	second := l.Message(ctx, "ai_detected", "zu", CategoryUI)

	assert.Equal(t, "[zu] AI-generated content detected", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, tr.calls, "second lookup must come from the cache")
}

func TestMessageFallsBackOnTranslationError(t *testing.T) {
	tr := &stubTranslator{err: errors.New("quota exceeded")}
	l := NewLocalizer(tr, newMapCache(), zap.NewNop())

	msg := l.Message(context.Background(), "ai_detected", "zu", CategoryUI)
	assert.Equal(t, "AI-generated content detected", msg)
}

func TestMessageUnknownKeyReturnsKey(t *testing.T) {
	l := NewLocalizer(&stubTranslator{}, newMapCache(), zap.NewNop())
	assert.Equal(t, "nope", l.Message(context.Background(), "nope", "en", CategoryUI))
}

func TestMessageUnsupportedLanguageFallsBack(t *testing.T) {
	tr := &stubTranslator{}
	l := NewLocalizer(tr, newMapCache(), zap.NewNop())

	msg := l.Message(context.Background(), "confidence", "xx", CategoryUI)
	assert.Equal(t, "Confidence", msg)
	assert.Equal(t, 0, tr.calls)
}

func TestDetectionMessageBands(t *testing.T) {
	l := NewLocalizer(&stubTranslator{}, newMapCache(), zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, baseTexts[CategoryDetection]["high_confidence_ai"],
		l.DetectionMessage(ctx, true, 95, "en"))
	assert.Equal(t, baseTexts[CategoryDetection]["medium_confidence_ai"],
		l.DetectionMessage(ctx, true, 65, "en"))
	assert.Equal(t, baseTexts[CategoryDetection]["low_confidence_ai"],
		l.DetectionMessage(ctx, true, 40, "en"))
	assert.Equal(t, baseTexts[CategoryDetection]["high_confidence_human"],
		l.DetectionMessage(ctx, false, 88, "en"))
}

func TestWarningMessage(t *testing.T) {
	l := NewLocalizer(&stubTranslator{}, newMapCache(), zap.NewNop())
	ctx := context.Background()

	assert.Contains(t, l.WarningMessage(ctx, true, "en"), "Warning")
	assert.Contains(t, l.WarningMessage(ctx, false, "en"), "No signs")
}

func TestAllTranslationsCoversCatalog(t *testing.T) {
	l := NewLocalizer(&stubTranslator{}, newMapCache(), zap.NewNop())

	all := l.AllTranslations(context.Background(), "en")
	require.Contains(t, all, CategoryUI)
	require.Contains(t, all, CategoryDetection)
	require.Contains(t, all, CategoryError)
	assert.Len(t, all[CategoryUI], len(baseTexts[CategoryUI]))
}

func TestSupportedLanguages(t *testing.T) {
	langs := SupportedLanguages()
	require.NotEmpty(t, langs)

	codes := make(map[string]bool, len(langs))
	saCount := 0
	for _, lang := range langs {
		codes[lang.Code] = true
		if lang.IsSALanguage {
			saCount++
		}
	}
	assert.True(t, codes["en"])
	assert.True(t, codes["zu"])
	assert.Equal(t, 11, saCount)

	// SA languages sort first.
	assert.True(t, langs[0].IsSALanguage)
}
