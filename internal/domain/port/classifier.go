package port

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// FrameClassifier is the boundary to the external deepfake model. It exposes
// exactly one operation per frame; the adapter behind it owns the fake/real
// label-index resolution.
type FrameClassifier interface {
	ClassifyFrame(ctx context.Context, image []byte) (entity.FrameScore, error)
}

// TextClassifier scores a text chunk the same way: fake here means
// AI-generated.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (entity.FrameScore, error)
}

// HealthChecker reports whether the backing model service is reachable.
type HealthChecker interface {
	Healthy(ctx context.Context) bool
}
