package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/detection"
	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
	"github.com/veriscan/veriscan-detection-service/internal/infra/metrics"
)

// VideoAnalysis is the full result of one video request.
type VideoAnalysis struct {
	Media   *entity.MediaInfo
	Verdict *entity.Verdict
}

// VideoParams are the per-request knobs. A nil Threshold and a zero
// MaxFrames fall back to the configured defaults; an explicit Threshold of
// 0 is honored as-is.
type VideoParams struct {
	Threshold *float64
	MaxFrames int
}

type AnalyzeVideoUseCase struct {
	prober     port.MediaProber
	extractor  port.FrameExtractor
	audio      port.AudioExtractor
	classifier port.FrameClassifier
	publisher  port.VerdictPublisher
	logger     *zap.Logger
	tempDir    string
	maxFrames  int
	threshold  float64
	wantAudio  bool
}

type AnalyzeVideoConfig struct {
	TempDir      string
	MaxFrames    int
	Threshold    float64
	ExtractAudio bool
}

func NewAnalyzeVideoUseCase(
	prober port.MediaProber,
	extractor port.FrameExtractor,
	audio port.AudioExtractor,
	classifier port.FrameClassifier,
	publisher port.VerdictPublisher,
	logger *zap.Logger,
	cfg AnalyzeVideoConfig,
) *AnalyzeVideoUseCase {
	return &AnalyzeVideoUseCase{
		prober:     prober,
		extractor:  extractor,
		audio:      audio,
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
		tempDir:    cfg.TempDir,
		maxFrames:  cfg.MaxFrames,
		threshold:  cfg.Threshold,
		wantAudio:  cfg.ExtractAudio,
	}
}

// Execute runs the full pipeline against the video at videoPath: probe,
// sample, extract, classify, aggregate. The working directory is removed on
// every exit path; a classifier failure aborts the analysis rather than
// degrading it.
func (uc *AnalyzeVideoUseCase) Execute(ctx context.Context, videoPath string, params VideoParams) (*VideoAnalysis, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeVideo.Execute")
	defer span.End()

	threshold := uc.threshold
	if params.Threshold != nil {
		threshold = *params.Threshold
	}
	maxFrames := params.MaxFrames
	if maxFrames == 0 {
		maxFrames = uc.maxFrames
	}
	if err := detection.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("request.id", requestID))
	log := uc.logger.With(zap.String("request_id", requestID))

	metrics.ActiveAnalyses.Inc()
	defer metrics.ActiveAnalyses.Dec()

	workDir := filepath.Join(uc.tempDir, requestID)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create workdir: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Probe container metadata
	probeStart := time.Now()
	ctxProbe, spanProbe := tracer.Start(ctx, "probe_media")
	media, err := uc.prober.Probe(ctxProbe, videoPath)
	spanProbe.End()
	if err != nil {
		log.Error("media probe failed", zap.Error(err))
		return nil, fmt.Errorf("probe media: %w", err)
	}
	metrics.AnalysisStageDuration.WithLabelValues("probe").Observe(time.Since(probeStart).Seconds())

	indices, err := detection.SampleIndices(media.FrameCount, maxFrames)
	if err != nil {
		return nil, err
	}

	// Extract exactly the sampled frames
	exStart := time.Now()
	ctxEx, spanEx := tracer.Start(ctx, "extract_frames")
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		spanEx.End()
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	framePaths, err := uc.extractor.ExtractFrames(ctxEx, videoPath, framesDir, indices)
	spanEx.End()
	if err != nil {
		log.Error("frame extraction failed", zap.Error(err))
		return nil, fmt.Errorf("extract frames: %w", err)
	}
	metrics.AnalysisStageDuration.WithLabelValues("extract").Observe(time.Since(exStart).Seconds())

	if uc.wantAudio && media.HasAudio {
		uc.extractAudioInfo(ctx, videoPath, workDir, log)
	}

	// Classify each frame
	clStart := time.Now()
	ctxCl, spanCl := tracer.Start(ctx, "classify_frames")
	scores, err := uc.classifyFrames(ctxCl, framePaths)
	spanCl.End()
	if err != nil {
		log.Error("frame classification failed", zap.Error(err))
		return nil, err
	}
	metrics.AnalysisStageDuration.WithLabelValues("classify").Observe(time.Since(clStart).Seconds())

	verdict, err := detection.Aggregate(scores, threshold)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, entity.VerdictEvent{
		RequestID:       requestID,
		MediaType:       "video",
		IsAIGenerated:   verdict.IsAIGenerated,
		ConfidenceScore: verdict.ConfidenceScore,
		FramesAnalyzed:  verdict.FramesAnalyzed,
	}, log)

	metrics.AnalysesTotal.WithLabelValues("video", verdictLabel(verdict.IsAIGenerated)).Inc()

	log.Info("video analysis completed",
		zap.Bool("is_ai_generated", verdict.IsAIGenerated),
		zap.Float64("confidence", verdict.ConfidenceScore),
		zap.Int("frames_analyzed", verdict.FramesAnalyzed),
	)

	return &VideoAnalysis{Media: media, Verdict: verdict}, nil
}

func (uc *AnalyzeVideoUseCase) classifyFrames(ctx context.Context, framePaths []string) ([]entity.FrameScore, error) {
	scores := make([]entity.FrameScore, 0, len(framePaths))
	for _, framePath := range framePaths {
		frame, err := os.ReadFile(framePath)
		if err != nil {
			return nil, fmt.Errorf("read frame %s: %w", filepath.Base(framePath), err)
		}
		score, err := uc.classifier.ClassifyFrame(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("classify frame %s: %w", filepath.Base(framePath), err)
		}
		metrics.FramesClassifiedTotal.Inc()
		scores = append(scores, score)
	}
	return scores, nil
}

// extractAudioInfo pulls the audio track so its presence is verified beyond
// the probe. Failures are logged, never fatal: audio is auxiliary signal.
func (uc *AnalyzeVideoUseCase) extractAudioInfo(ctx context.Context, videoPath, workDir string, log *zap.Logger) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "extract_audio")
	defer span.End()

	path, hasAudio, err := uc.audio.ExtractAudio(ctx, videoPath, workDir)
	if err != nil {
		log.Warn("audio extraction failed", zap.Error(err))
		return
	}
	if hasAudio {
		log.Debug("audio track extracted", zap.String("path", path))
	}
}

func (uc *AnalyzeVideoUseCase) publish(ctx context.Context, event entity.VerdictEvent, log *zap.Logger) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishVerdict(ctx, event); err != nil {
		log.Warn("verdict publish failed", zap.Error(err))
	}
}

func verdictLabel(isAI bool) string {
	if isAI {
		return "ai"
	}
	return "human"
}
