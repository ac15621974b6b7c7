package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TranslationCache persists translated catalog texts so translations survive
// restarts and are shared across instances. Entries are append-only.
type TranslationCache struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewTranslationCache(pool *pgxpool.Pool, logger *zap.Logger) *TranslationCache {
	return &TranslationCache{pool: pool, logger: logger}
}

// EnsureSchema creates the cache table if it does not exist yet.
func (c *TranslationCache) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS translation_cache (
			cache_key  TEXT        NOT NULL,
			lang       TEXT        NOT NULL,
			text       TEXT        NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (cache_key, lang)
		)`

	if _, err := c.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create translation_cache table: %w", err)
	}
	return nil
}

func (c *TranslationCache) Get(ctx context.Context, key, lang string) (string, bool) {
	query := `SELECT text FROM translation_cache WHERE cache_key=$1 AND lang=$2`

	var text string
	err := c.pool.QueryRow(ctx, query, key, lang).Scan(&text)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			c.logger.Warn("translation cache lookup failed",
				zap.String("key", key),
				zap.String("lang", lang),
				zap.Error(err),
			)
		}
		return "", false
	}
	return text, true
}

// Put inserts the translation unless one is already stored. A cache write
// failure is logged and swallowed; the caller already has the translation.
func (c *TranslationCache) Put(ctx context.Context, key, lang, text string) {
	query := `
		INSERT INTO translation_cache (cache_key, lang, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (cache_key, lang) DO NOTHING`

	if _, err := c.pool.Exec(ctx, query, key, lang, text); err != nil {
		c.logger.Warn("translation cache write failed",
			zap.String("key", key),
			zap.String("lang", lang),
			zap.Error(err),
		)
	}
}
