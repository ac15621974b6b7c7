package translate

import (
	"context"
	"fmt"

	"cloud.google.com/go/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleTranslator translates catalog texts through the Cloud Translation
// API. It satisfies port.Translator.
type GoogleTranslator struct {
	client *translate.Client
	logger *zap.Logger
}

func NewGoogleTranslator(ctx context.Context, apiKey string, logger *zap.Logger) (*GoogleTranslator, error) {
	client, err := translate.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create translate client: %w", err)
	}
	return &GoogleTranslator{client: client, logger: logger}, nil
}

// Translate renders text into targetLang (an ISO 639-1 code).
func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	target, err := language.Parse(targetLang)
	if err != nil {
		return "", fmt.Errorf("parse target language %q: %w", targetLang, err)
	}

	resp, err := g.client.Translate(ctx, []string{text}, target, &translate.Options{
		Source: language.English,
		Format: translate.Text,
	})
	if err != nil {
		return "", fmt.Errorf("translate to %s: %w", targetLang, err)
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("translate to %s: empty response", targetLang)
	}
	return resp[0].Text, nil
}

func (g *GoogleTranslator) Close() error {
	return g.client.Close()
}
