package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// Prober reads container metadata via ffprobe without decoding the stream.
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

// ffprobeOutput is the JSON emitted by ffprobe -show_streams -show_format.
type ffprobeOutput struct {
	Streams []struct {
		CodecName     string `json:"codec_name"`
		CodecType     string `json:"codec_type"`
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		RFrameRate    string `json:"r_frame_rate"`
		NbFrames      string `json:"nb_frames"`
		NbReadPackets string `json:"nb_read_packets"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe returns frame count, FPS, resolution, duration and audio-stream info
// for the video. A container reporting zero frames or zero FPS fails with
// ErrNoFrames: aggregation over an empty sample is undefined.
func (p *Prober) Probe(ctx context.Context, videoPath string) (*entity.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-count_packets",
		"-show_streams",
		"-show_format",
		"-of", "json",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe: %w", err)
	}

	var probed ffprobeOutput
	if err := json.Unmarshal(output, &probed); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &entity.MediaInfo{}
	for _, s := range probed.Streams {
		switch s.CodecType {
		case "video":
			if info.FrameCount != 0 {
				continue // only the first video stream counts
			}
			info.Width = s.Width
			info.Height = s.Height
			info.FPS = parseFrameRate(s.RFrameRate)
			info.FrameCount = parseFrameCount(s.NbFrames, s.NbReadPackets)
		case "audio":
			if !info.HasAudio {
				info.HasAudio = true
				info.AudioCodec = s.CodecName
			}
		}
	}

	if d, err := strconv.ParseFloat(strings.TrimSpace(probed.Format.Duration), 64); err == nil {
		info.Duration = d
	}

	if info.FrameCount <= 0 || info.FPS <= 0 {
		return nil, fmt.Errorf("%w: %d frames at %.2f fps", entity.ErrNoFrames, info.FrameCount, info.FPS)
	}

	return info, nil
}

// parseFrameRate converts ffprobe's rational rate ("30000/1001") to a float.
func parseFrameRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	if !found {
		f, _ := strconv.ParseFloat(rate, 64)
		return f
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// parseFrameCount prefers nb_frames but falls back to counted packets, which
// some containers need (nb_frames is often absent from webm).
func parseFrameCount(nbFrames, nbPackets string) int {
	if n, err := strconv.Atoi(nbFrames); err == nil && n > 0 {
		return n
	}
	if n, err := strconv.Atoi(nbPackets); err == nil {
		return n
	}
	return 0
}
