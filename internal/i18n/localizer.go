package i18n

import (
	"context"

	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
)

// Localizer resolves catalog messages in any supported language, translating
// on demand and caching the result. English never touches the translator.
type Localizer struct {
	translator port.Translator
	cache      port.TranslationCache
	logger     *zap.Logger
}

func NewLocalizer(translator port.Translator, cache port.TranslationCache, logger *zap.Logger) *Localizer {
	return &Localizer{translator: translator, cache: cache, logger: logger}
}

// Message returns the catalog entry for (category, key) in the requested
// language. Unknown keys come back verbatim; translation failures fall back
// to the English base text rather than failing the request.
func (l *Localizer) Message(ctx context.Context, key, lang, category string) string {
	base, ok := baseTexts[category][key]
	if !ok {
		return key
	}
	if lang == DefaultLanguage || !IsSupported(lang) {
		return base
	}

	cacheKey := category + ":" + key
	if cached, ok := l.cache.Get(ctx, cacheKey, lang); ok {
		return cached
	}

	// No translator configured: serve the English base text.
	if l.translator == nil {
		return base
	}

	translated, err := l.translator.Translate(ctx, base, lang)
	if err != nil {
		l.logger.Warn("translation failed, falling back to English",
			zap.String("key", key),
			zap.String("language", lang),
			zap.Error(err),
		)
		return base
	}

	l.cache.Put(ctx, cacheKey, lang, translated)
	return translated
}

// DetectionMessage picks the catalog key from the verdict and its confidence
// band: >=80 high, >=60 medium, otherwise low.
func (l *Localizer) DetectionMessage(ctx context.Context, isAI bool, confidence float64, lang string) string {
	level := "low"
	switch {
	case confidence >= 80:
		level = "high"
	case confidence >= 60:
		level = "medium"
	}

	contentType := "human"
	if isAI {
		contentType = "ai"
	}

	return l.Message(ctx, level+"_confidence_"+contentType, lang, CategoryDetection)
}

// WarningMessage returns the warning (AI) or all-clear (human) message.
func (l *Localizer) WarningMessage(ctx context.Context, isAI bool, lang string) string {
	key := "safe"
	if isAI {
		key = "warning"
	}
	return l.Message(ctx, key, lang, CategoryDetection)
}

// ErrorMessage resolves a localized error message.
func (l *Localizer) ErrorMessage(ctx context.Context, key, lang string) string {
	return l.Message(ctx, key, lang, CategoryError)
}

// AllTranslations returns the complete catalog in one language, keyed by
// category then message key.
func (l *Localizer) AllTranslations(ctx context.Context, lang string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(baseTexts))
	for category, entries := range baseTexts {
		translated := make(map[string]string, len(entries))
		for key := range entries {
			translated[key] = l.Message(ctx, key, lang, category)
		}
		out[category] = translated
	}
	return out
}
