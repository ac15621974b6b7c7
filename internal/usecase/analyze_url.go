package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
	"github.com/veriscan/veriscan-detection-service/internal/domain/port"
)

// URLAnalysis wraps whichever analysis the downloaded content dispatched to.
// Exactly one of Video or Document is set.
type URLAnalysis struct {
	Download *entity.DownloadInfo
	Video    *VideoAnalysis
	Document *DocumentAnalysis
}

// MediaType reports which branch the URL resolved to.
func (a *URLAnalysis) MediaType() string {
	if a.Document != nil {
		return "document"
	}
	return "video"
}

type AnalyzeURLUseCase struct {
	downloader port.Downloader
	video      *AnalyzeVideoUseCase
	document   *AnalyzeDocumentUseCase
	logger     *zap.Logger
	tempDir    string
}

func NewAnalyzeURLUseCase(
	downloader port.Downloader,
	video *AnalyzeVideoUseCase,
	document *AnalyzeDocumentUseCase,
	logger *zap.Logger,
	tempDir string,
) *AnalyzeURLUseCase {
	return &AnalyzeURLUseCase{
		downloader: downloader,
		video:      video,
		document:   document,
		logger:     logger,
		tempDir:    tempDir,
	}
}

// Execute downloads the URL's content and dispatches it to video or document
// analysis. The downloaded file is deleted on every exit path.
func (uc *AnalyzeURLUseCase) Execute(ctx context.Context, rawURL string, thresholdOverride *float64) (*URLAnalysis, error) {
	tracer := otel.Tracer("usecase")
	ctx, span := tracer.Start(ctx, "AnalyzeURL.Execute")
	defer span.End()

	workDir := filepath.Join(uc.tempDir, "url_"+uuid.NewString())
	defer os.RemoveAll(workDir)

	ctxDl, spanDl := tracer.Start(ctx, "download_url")
	download, err := uc.downloader.Download(ctxDl, rawURL, workDir)
	spanDl.End()
	if err != nil {
		uc.logger.Error("url download failed", zap.String("url", rawURL), zap.Error(err))
		return nil, fmt.Errorf("download url: %w", err)
	}

	uc.logger.Info("url content downloaded",
		zap.String("url", rawURL),
		zap.String("kind", string(download.Kind)),
		zap.Float64("size_mb", download.SizeMB),
	)

	result := &URLAnalysis{Download: download}

	if isDocumentFile(download) {
		analysis, err := uc.document.Execute(ctx, download.Path, thresholdOverride)
		if err != nil {
			return nil, err
		}
		result.Document = analysis
		return result, nil
	}

	analysis, err := uc.video.Execute(ctx, download.Path, VideoParams{Threshold: thresholdOverride})
	if err != nil {
		return nil, err
	}
	result.Video = analysis
	return result, nil
}

// isDocumentFile decides the branch for downloads whose URL did not settle
// it, using the fetched file's extension.
func isDocumentFile(download *entity.DownloadInfo) bool {
	if download.Kind == entity.URLKindDocument {
		return true
	}
	if download.Kind != entity.URLKindUnknown {
		return false
	}
	switch strings.ToLower(filepath.Ext(download.Path)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}
