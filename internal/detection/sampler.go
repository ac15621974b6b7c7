package detection

import (
	"fmt"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// SampleIndices selects min(totalFrames, maxFrames) frame indices evenly
// spaced across [0, totalFrames), so long videos are sampled from beginning,
// middle and end rather than a contiguous prefix.
func SampleIndices(totalFrames, maxFrames int) ([]int, error) {
	if maxFrames <= 0 {
		return nil, fmt.Errorf("max frames must be positive, got %d", maxFrames)
	}
	if totalFrames <= 0 {
		return nil, entity.ErrNoFrames
	}

	if totalFrames <= maxFrames {
		indices := make([]int, totalFrames)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	step := totalFrames / maxFrames
	indices := make([]int, maxFrames)
	for i := range indices {
		indices[i] = i * step
	}
	return indices, nil
}
