package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

var videoPlatforms = []string{
	"youtube.com", "youtu.be", "vimeo.com", "dailymotion.com",
	"tiktok.com", "instagram.com", "facebook.com", "twitter.com",
	"x.com", "reddit.com",
}

var videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".webm", ".flv"}

var documentExtensions = []string{".pdf", ".docx", ".doc", ".txt"}

// Downloader fetches remote media into a local working directory. Video
// platform URLs go through yt-dlp; direct links are streamed over HTTP with
// a hard size cap.
type Downloader struct {
	ytdlpPath string
	maxBytes  int64
	client    *http.Client
	logger    *zap.Logger
}

func NewDownloader(ytdlpPath string, maxUploadMB int, logger *zap.Logger) *Downloader {
	return &Downloader{
		ytdlpPath: ytdlpPath,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
		client:    &http.Client{Timeout: 2 * time.Minute},
		logger:    logger,
	}
}

// ClassifyURL validates rawURL and reports what it points at.
func ClassifyURL(rawURL string) (entity.URLKind, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return entity.URLKindUnknown, fmt.Errorf("%w: %q", entity.ErrInvalidURL, rawURL)
	}

	host := strings.ToLower(parsed.Hostname())
	for _, platform := range videoPlatforms {
		if host == platform || strings.HasSuffix(host, "."+platform) {
			return entity.URLKindVideoPlatform, nil
		}
	}

	ext := strings.ToLower(path.Ext(parsed.Path))
	for _, e := range videoExtensions {
		if ext == e {
			return entity.URLKindDirectVideo, nil
		}
	}
	for _, e := range documentExtensions {
		if ext == e {
			return entity.URLKindDocument, nil
		}
	}
	return entity.URLKindUnknown, nil
}

// Download validates and classifies rawURL, then fetches it into destDir.
// Unknown URLs are still attempted as direct downloads so extensionless
// links can work. The caller owns the returned file and must delete it.
func (d *Downloader) Download(ctx context.Context, rawURL string, destDir string) (*entity.DownloadInfo, error) {
	kind, err := ClassifyURL(rawURL)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	d.logger.Info("downloading from url",
		zap.String("url", rawURL),
		zap.String("kind", string(kind)),
	)

	if kind == entity.URLKindVideoPlatform {
		return d.downloadWithYtdlp(ctx, rawURL, destDir)
	}
	return d.downloadDirect(ctx, rawURL, destDir, kind)
}

func (d *Downloader) downloadWithYtdlp(ctx context.Context, rawURL, destDir string) (*entity.DownloadInfo, error) {
	outTemplate := filepath.Join(destDir, "video_"+uuid.NewString()+".%(ext)s")

	cmd := exec.CommandContext(ctx, d.ytdlpPath,
		"-f", "best[ext=mp4]/best",
		"--max-filesize", fmt.Sprintf("%d", d.maxBytes),
		"--no-playlist",
		"--no-warnings",
		"--no-simulate",
		"--print", "after_move:filepath",
		"--print", "after_move:%(title)s",
		"--print", "after_move:%(extractor)s",
		"-o", outTemplate,
		rawURL,
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	if len(lines) < 1 || lines[0] == "" {
		return nil, fmt.Errorf("yt-dlp produced no output file")
	}

	info := &entity.DownloadInfo{
		Path:     lines[0],
		Filename: filepath.Base(lines[0]),
		Kind:     entity.URLKindVideoPlatform,
	}
	if len(lines) > 1 {
		info.Title = lines[1]
	}
	if len(lines) > 2 {
		info.Platform = lines[2]
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp reported file not found: %w", err)
	}
	info.SizeMB = roundMB(stat.Size())

	d.logger.Info("platform video downloaded",
		zap.String("file", info.Filename),
		zap.Float64("size_mb", info.SizeMB),
		zap.String("platform", info.Platform),
	)
	return info, nil
}

func (d *Downloader) downloadDirect(ctx context.Context, rawURL, destDir string, kind entity.URLKind) (*entity.DownloadInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch url: server returned %d", resp.StatusCode)
	}

	parsed, _ := url.Parse(rawURL)
	ext := path.Ext(parsed.Path)
	if ext == "" {
		ext = ".mp4"
	}
	dest := filepath.Join(destDir, "download_"+uuid.NewString()+ext)

	out, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("create download file: %w", err)
	}
	defer out.Close()

	// One extra byte past the cap is enough to detect oversize bodies.
	written, err := io.Copy(out, io.LimitReader(resp.Body, d.maxBytes+1))
	if err != nil {
		os.Remove(dest)
		return nil, fmt.Errorf("download body: %w", err)
	}
	if written > d.maxBytes {
		os.Remove(dest)
		return nil, fmt.Errorf("download exceeds %d MB limit", d.maxBytes/(1024*1024))
	}

	info := &entity.DownloadInfo{
		Path:     dest,
		Filename: filepath.Base(dest),
		SizeMB:   roundMB(written),
		Kind:     kind,
	}

	d.logger.Info("direct file downloaded",
		zap.String("file", info.Filename),
		zap.Float64("size_mb", info.SizeMB),
	)
	return info, nil
}

func roundMB(bytes int64) float64 {
	mb := float64(bytes) / (1024 * 1024)
	return float64(int(mb*100+0.5)) / 100
}
