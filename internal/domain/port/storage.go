package port

import "context"

// MediaStorage fetches previously uploaded media objects for analysis.
type MediaStorage interface {
	FetchMedia(ctx context.Context, objectKey string, destPath string) error
}
