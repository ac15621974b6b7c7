package port

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// Downloader fetches URL-sourced content into a local file scoped to the
// request. The caller owns deletion of the returned path.
type Downloader interface {
	Download(ctx context.Context, url string, destDir string) (*entity.DownloadInfo, error)
}
