package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// Extractor pulls plain text out of uploaded documents. Supported formats
// are pdf, docx, doc and txt; anything else is rejected before any parsing.
// A .doc file goes through the docx reader, which handles the common case of
// docx content saved under the legacy extension.
type Extractor struct {
	logger *zap.Logger
}

func NewExtractor(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractText reads the document at path and returns its text together with
// basic shape information.
func (e *Extractor) ExtractText(ctx context.Context, path string) (string, *entity.DocumentInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	var (
		text string
		err  error
	)
	switch format {
	case "pdf":
		text, err = extractPDF(path)
	case "docx", "doc":
		text, err = extractDOCX(path)
	case "txt":
		var raw []byte
		raw, err = os.ReadFile(path)
		text = string(raw)
	default:
		return "", nil, fmt.Errorf("%w: %q", entity.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", nil, fmt.Errorf("extract %s text: %w", format, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil, entity.ErrNoText
	}

	info := &entity.DocumentInfo{
		Filename:       filepath.Base(path),
		FileType:       format,
		WordCount:      len(strings.Fields(text)),
		CharacterCount: len(text),
		SentenceCount:  countSentences(text),
	}

	e.logger.Debug("document text extracted",
		zap.String("format", format),
		zap.Int("words", info.WordCount),
	)
	return text, info, nil
}

func countSentences(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}
