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
	"github.com/veriscan/veriscan-detection-service/internal/infra/metrics"
)

type AnalyzeImageUseCase struct {
	classifier port.FrameClassifier
	publisher  port.VerdictPublisher
	logger     *zap.Logger
	threshold  float64
}

func NewAnalyzeImageUseCase(
	classifier port.FrameClassifier,
	publisher port.VerdictPublisher,
	logger *zap.Logger,
	threshold float64,
) *AnalyzeImageUseCase {
	return &AnalyzeImageUseCase{
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
		threshold:  threshold,
	}
}

// Execute classifies a single image. A nil thresholdOverride keeps the
// configured default.
func (uc *AnalyzeImageUseCase) Execute(ctx context.Context, image []byte, thresholdOverride *float64) (*entity.ImageVerdict, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeImage.Execute")
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

	score, err := uc.classifier.ClassifyFrame(ctx, image)
	if err != nil {
		uc.logger.Error("image classification failed", zap.Error(err))
		return nil, fmt.Errorf("classify image: %w", err)
	}
	metrics.FramesClassifiedTotal.Inc()

	verdict, err := detection.ScoreImage(score, threshold)
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		event := entity.VerdictEvent{
			RequestID:       uuid.NewString(),
			MediaType:       "image",
			IsAIGenerated:   verdict.IsAIGenerated,
			ConfidenceScore: verdict.ConfidenceScore,
		}
		if err := uc.publisher.PublishVerdict(ctx, event); err != nil {
			uc.logger.Warn("verdict publish failed", zap.Error(err))
		}
	}

	metrics.AnalysesTotal.WithLabelValues("image", verdictLabel(verdict.IsAIGenerated)).Inc()

	uc.logger.Info("image analysis completed",
		zap.Bool("is_ai_generated", verdict.IsAIGenerated),
		zap.Float64("confidence", verdict.ConfidenceScore),
	)
	return verdict, nil
}
