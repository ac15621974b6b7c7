package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

func TestSampleIndicesLongVideo(t *testing.T) {
	cases := []struct {
		name        string
		totalFrames int
		maxFrames   int
	}{
		{"thousand frames", 1000, 10},
		{"uneven division", 25, 10},
		{"exactly double", 20, 10},
		{"one over budget", 11, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			indices, err := SampleIndices(tc.totalFrames, tc.maxFrames)
			require.NoError(t, err)
			require.Len(t, indices, tc.maxFrames)

			seen := make(map[int]bool)
			for _, idx := range indices {
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, tc.totalFrames)
				assert.False(t, seen[idx], "index %d sampled twice", idx)
				seen[idx] = true
			}
			assert.Equal(t, 0, indices[0], "sampling must start at the beginning")
		})
	}
}

func TestSampleIndicesShortVideo(t *testing.T) {
	indices, err := SampleIndices(7, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, indices)
}

func TestSampleIndicesExactBudget(t *testing.T) {
	indices, err := SampleIndices(10, 10)
	require.NoError(t, err)
	require.Len(t, indices, 10)
	assert.Equal(t, 9, indices[9])
}

func TestSampleIndicesEvenSpacing(t *testing.T) {
	indices, err := SampleIndices(1000, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 100, 200, 300, 400, 500, 600, 700, 800, 900}, indices)
}

func TestSampleIndicesZeroFrames(t *testing.T) {
	_, err := SampleIndices(0, 10)
	assert.ErrorIs(t, err, entity.ErrNoFrames)

	_, err = SampleIndices(-3, 10)
	assert.ErrorIs(t, err, entity.ErrNoFrames)
}

func TestSampleIndicesInvalidBudget(t *testing.T) {
	_, err := SampleIndices(100, 0)
	assert.Error(t, err)
}
