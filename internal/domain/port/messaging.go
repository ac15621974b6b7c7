package port

import (
	"context"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// VerdictPublisher emits a completed verdict summary for downstream
// consumers. Publishing is best-effort; failures never fail the request.
type VerdictPublisher interface {
	PublishVerdict(ctx context.Context, event entity.VerdictEvent) error
}
