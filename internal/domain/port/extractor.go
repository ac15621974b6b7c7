package port

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// MediaProber reads container metadata without decoding the stream.
type MediaProber interface {
	Probe(ctx context.Context, videoPath string) (*entity.MediaInfo, error)
}

// FrameExtractor decodes exactly the frames at the given indices into image
// files under outputDir and returns their paths in index order.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath string, outputDir string, indices []int) ([]string, error)
}

// AudioExtractor pulls the audio track out of a video into a WAV file.
// Returns ("", false, nil) when the video has no audio stream.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoPath string, outputDir string) (path string, hasAudio bool, err error)
}
