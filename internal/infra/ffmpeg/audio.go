package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// AudioExtractor pulls the audio track out of a video as 16kHz mono WAV,
// the format downstream speech tooling expects.
type AudioExtractor struct {
	sampleRate int
	logger     *zap.Logger
}

func NewAudioExtractor(logger *zap.Logger) *AudioExtractor {
	return &AudioExtractor{sampleRate: 16000, logger: logger}
}

// ExtractAudio writes the audio track to a WAV file under outputDir.
// Videos without an audio stream return ("", false, nil) instead of an
// error; missing audio is a property of the input, not a failure.
func (a *AudioExtractor) ExtractAudio(ctx context.Context, videoPath string, outputDir string) (string, bool, error) {
	hasAudio, err := a.hasAudioStream(ctx, videoPath)
	if err != nil {
		return "", false, err
	}
	if !hasAudio {
		a.logger.Info("no audio stream found", zap.String("video", filepath.Base(videoPath)))
		return "", false, nil
	}

	audioPath := filepath.Join(outputDir, "audio.wav")
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ac", "1",
		"-ar", fmt.Sprintf("%d", a.sampleRate),
		"-y",
		audioPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", true, fmt.Errorf("ffmpeg audio extraction: %w, output: %s", err, string(output))
	}

	return audioPath, true, nil
}

func (a *AudioExtractor) hasAudioStream(ctx context.Context, videoPath string) (bool, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=codec_type",
		"-of", "csv=p=0",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("ffprobe audio check: %w", err)
	}
	return strings.TrimSpace(string(output)) != "", nil
}
