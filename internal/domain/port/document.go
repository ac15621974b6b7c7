package port

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// TextExtractor pulls plain text out of a document file (PDF, DOCX, TXT).
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, *entity.DocumentInfo, error)
}
