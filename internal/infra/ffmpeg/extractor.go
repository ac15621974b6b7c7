package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// Extractor decodes selected frames from a video using the ffmpeg binary.
type Extractor struct {
	format string
	logger *zap.Logger
}

func NewExtractor(format string, logger *zap.Logger) *Extractor {
	return &Extractor{format: format, logger: logger}
}

// ExtractFrames decodes exactly the frames at the given indices into
// outputDir and returns the written paths in frame order. Only the sampled
// frames are decoded to full images; long videos are never fully expanded.
func (e *Extractor) ExtractFrames(ctx context.Context, videoPath string, outputDir string, indices []int) ([]string, error) {
	if len(indices) == 0 {
		return nil, entity.ErrNoFrames
	}

	framePattern := filepath.Join(outputDir, fmt.Sprintf("frame_%%04d.%s", e.format))
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vf", selectExpr(indices),
		"-vsync", "0",
		"-y",
		framePattern,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg error: %w, output: %s", err, string(output))
	}

	globPattern := filepath.Join(outputDir, fmt.Sprintf("*.%s", e.format))
	frames, err := filepath.Glob(globPattern)
	if err != nil {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	if len(frames) == 0 {
		return nil, entity.ErrNoFrames
	}
	sort.Strings(frames)

	e.logger.Info("frames extracted",
		zap.Int("requested", len(indices)),
		zap.Int("extracted", len(frames)),
	)

	return frames, nil
}

// selectExpr builds the ffmpeg select filter matching exactly the given
// frame numbers, e.g. select=eq(n\,0)+eq(n\,100). Commas are escaped because
// they separate filter options; the argument goes to ffmpeg directly, so no
// shell quoting is involved.
func selectExpr(indices []int) string {
	terms := make([]string, len(indices))
	for i, idx := range indices {
		terms[i] = fmt.Sprintf(`eq(n\,%d)`, idx)
	}
	return "select=" + strings.Join(terms, "+")
}
