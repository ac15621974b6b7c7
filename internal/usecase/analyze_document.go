package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/detection"
	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
	"github.com/veriscan/veriscan-detection-service/internal/infra/document"
	"github.com/veriscan/veriscan-detection-service/internal/infra/metrics"
)

// DocumentAnalysis is the result of one document request.
type DocumentAnalysis struct {
	Info    *entity.DocumentInfo
	Verdict *entity.DocumentVerdict
}

type AnalyzeDocumentUseCase struct {
	extractor  port.TextExtractor
	classifier port.TextClassifier
	publisher  port.VerdictPublisher
	logger     *zap.Logger
	chunkWords int
	maxChunks  int
	threshold  float64
}

type AnalyzeDocumentConfig struct {
	ChunkWords int
	MaxChunks  int
	Threshold  float64
}

func NewAnalyzeDocumentUseCase(
	extractor port.TextExtractor,
	classifier port.TextClassifier,
	publisher port.VerdictPublisher,
	logger *zap.Logger,
	cfg AnalyzeDocumentConfig,
) *AnalyzeDocumentUseCase {
	return &AnalyzeDocumentUseCase{
		extractor:  extractor,
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
		chunkWords: cfg.ChunkWords,
		maxChunks:  cfg.MaxChunks,
		threshold:  cfg.Threshold,
	}
}

// Execute extracts the document's text, scores it chunk by chunk and
// aggregates the chunk scores with the same rule used for video frames.
func (uc *AnalyzeDocumentUseCase) Execute(ctx context.Context, path string, thresholdOverride *float64) (*DocumentAnalysis, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeDocument.Execute")
	defer span.End()

	threshold := uc.threshold
	if thresholdOverride != nil {
		threshold = *thresholdOverride
	}
	if err := detection.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	metrics.ActiveAnalyses.Inc()
	defer metrics.ActiveAnalyses.Dec()

	ctxEx, spanEx := tracer.Start(ctx, "extract_text")
	text, info, err := uc.extractor.ExtractText(ctxEx, path)
	spanEx.End()
	if err != nil {
		uc.logger.Error("text extraction failed", zap.Error(err))
		return nil, fmt.Errorf("extract text: %w", err)
	}

	chunks := document.ChunkText(text, uc.chunkWords, uc.maxChunks)
	if len(chunks) == 0 {
		return nil, entity.ErrNoText
	}

	ctxCl, spanCl := tracer.Start(ctx, "classify_chunks")
	scores := make([]entity.FrameScore, 0, len(chunks))
	for i, chunk := range chunks {
		score, err := uc.classifier.ClassifyText(ctxCl, chunk)
		if err != nil {
			spanCl.End()
			uc.logger.Error("chunk classification failed", zap.Int("chunk", i), zap.Error(err))
			return nil, fmt.Errorf("classify chunk %d: %w", i, err)
		}
		scores = append(scores, score)
	}
	spanCl.End()

	agg, err := detection.Aggregate(scores, threshold)
	if err != nil {
		return nil, err
	}

	verdict := &entity.DocumentVerdict{
		IsAIGenerated:      agg.IsAIGenerated,
		ConfidenceScore:    agg.ConfidenceScore,
		AvgFakeProbability: agg.AvgFakeProbability,
		AvgRealProbability: agg.AvgRealProbability,
		ChunksAnalyzed:     len(scores),
	}

	if uc.publisher != nil {
		event := entity.VerdictEvent{
			RequestID:       uuid.NewString(),
			MediaType:       "document",
			IsAIGenerated:   verdict.IsAIGenerated,
			ConfidenceScore: verdict.ConfidenceScore,
		}
		if err := uc.publisher.PublishVerdict(ctx, event); err != nil {
			uc.logger.Warn("verdict publish failed", zap.Error(err))
		}
	}

	metrics.AnalysesTotal.WithLabelValues("document", verdictLabel(verdict.IsAIGenerated)).Inc()

	uc.logger.Info("document analysis completed",
		zap.String("format", info.FileType),
		zap.Bool("is_ai_generated", verdict.IsAIGenerated),
		zap.Int("chunks_analyzed", verdict.ChunksAnalyzed),
	)

	return &DocumentAnalysis{Info: info, Verdict: verdict}, nil
}
