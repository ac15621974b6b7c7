package port

import "context"

// Translator translates a single English text into the target language.
type Translator interface {
	Translate(ctx context.Context, text string, targetLang string) (string, error)
}

// TranslationCache is an append-only store keyed by (key, target language).
// Implementations must be safe for concurrent lookups with an
// insert-if-absent discipline; Put never overwrites an existing entry.
type TranslationCache interface {
	Get(ctx context.Context, key string, lang string) (string, bool)
	Put(ctx context.Context, key string, lang string, text string)
}
