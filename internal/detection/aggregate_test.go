package detection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

func scoresFromFakes(fakes ...float64) []entity.FrameScore {
	scores := make([]entity.FrameScore, len(fakes))
	for i, f := range fakes {
		scores[i] = entity.FrameScore{FakeProbability: f, RealProbability: 1 - f}
	}
	return scores
}

func TestAggregateUniformlyFake(t *testing.T) {
	v, err := Aggregate(scoresFromFakes(0.9, 0.9, 0.9), 0.5)
	require.NoError(t, err)

	assert.True(t, v.IsAIGenerated)
	assert.InDelta(t, 90.0, v.ConfidenceScore, 1e-9)
	assert.InDelta(t, 0.9, v.AvgFakeProbability, 1e-9)
	assert.InDelta(t, 0.9, v.MaxFakeProbability, 1e-9)
	assert.InDelta(t, 1.0, v.FakeFrameRatio, 1e-9)
	assert.Equal(t, 3, v.FramesAnalyzed)
}

func TestAggregateSingleOutlierNotFlagged(t *testing.T) {
	// One strongly fake frame among clean ones: ratio 0.25 and avg 0.3 keep
	// all three triggers off.
	v, err := Aggregate(scoresFromFakes(0.1, 0.1, 0.9, 0.1), 0.5)
	require.NoError(t, err)

	assert.False(t, v.IsAIGenerated)
	assert.InDelta(t, 0.3, v.AvgFakeProbability, 1e-9)
	assert.InDelta(t, 0.25, v.FakeFrameRatio, 1e-9)
	assert.InDelta(t, 0.9, v.MaxFakeProbability, 1e-9)
	// Human confidence: 0.7*0.7 + (1-0.9)*0.3 = 0.52.
	assert.InDelta(t, 52.0, v.ConfidenceScore, 1e-6)
}

func TestAggregateMaxAndAvgTrigger(t *testing.T) {
	// avg = (4*0.35 + 0.85) / 5 = 0.45, ratio 0.2; flagged via the
	// max>0.8 && avg>0.4 clause alone.
	v, err := Aggregate(scoresFromFakes(0.35, 0.35, 0.35, 0.35, 0.85), 0.5)
	require.NoError(t, err)

	assert.True(t, v.IsAIGenerated)
	assert.InDelta(t, 0.45, v.AvgFakeProbability, 1e-9)
	assert.InDelta(t, 0.2, v.FakeFrameRatio, 1e-9)
	assert.InDelta(t, 61.0, v.ConfidenceScore, 1e-6)
}

func TestAggregateRatioTrigger(t *testing.T) {
	// Low average, but 2/5 of frames individually exceed the threshold.
	v, err := Aggregate(scoresFromFakes(0.6, 0.6, 0.1, 0.1, 0.1), 0.5)
	require.NoError(t, err)
	assert.True(t, v.IsAIGenerated)
	assert.Less(t, v.AvgFakeProbability, 0.5)
}

func TestAggregateMedianOddCount(t *testing.T) {
	// The median of an odd-length sample is the middle value itself, not an
	// interpolated one.
	v, err := Aggregate(scoresFromFakes(0.1, 0.5, 0.9), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, v.MedianFakeProb, 1e-9)
}

func TestAggregateMedianEvenCount(t *testing.T) {
	// Even length averages the two middle values: (0.2+0.6)/2 = 0.4.
	v, err := Aggregate(scoresFromFakes(0.1, 0.2, 0.6, 0.9), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, v.MedianFakeProb, 1e-9)
}

func TestAggregateStdDeviation(t *testing.T) {
	// Population std dev of {0.1, 0.5, 0.9}: sqrt(((0.4)^2+0+(0.4)^2)/3),
	// reported rounded to 4 decimals.
	v, err := Aggregate(scoresFromFakes(0.1, 0.5, 0.9), 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.3266, v.StdFakeProbability, 1e-9)
}

func TestAggregateOrderIndependent(t *testing.T) {
	fakes := []float64{0.1, 0.1, 0.9, 0.1, 0.42, 0.77}
	base, err := Aggregate(scoresFromFakes(fakes...), 0.5)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 20; i++ {
		shuffled := append([]float64(nil), fakes...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		v, err := Aggregate(scoresFromFakes(shuffled...), 0.5)
		require.NoError(t, err)
		assert.Equal(t, base, v)
	}
}

func TestAggregateConfidenceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		n := 1 + rng.Intn(30)
		fakes := make([]float64, n)
		for j := range fakes {
			fakes[j] = rng.Float64()
		}
		v, err := Aggregate(scoresFromFakes(fakes...), 0.5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v.ConfidenceScore, 0.0)
		assert.LessOrEqual(t, v.ConfidenceScore, 100.0)
	}
}

func TestAggregateSingleFrameAgreesWithImagePath(t *testing.T) {
	const p = 0.9

	v, err := Aggregate(scoresFromFakes(p), 0.5)
	require.NoError(t, err)
	require.True(t, v.IsAIGenerated)

	iv, err := ScoreImage(entity.FrameScore{FakeProbability: p, RealProbability: 1 - p}, 0.5)
	require.NoError(t, err)
	require.True(t, iv.IsAIGenerated)

	// p*0.6 + p*0.4 == p, so both paths report the same percentage.
	assert.InDelta(t, iv.ConfidenceScore, v.ConfidenceScore, 1e-9)
	assert.InDelta(t, 90.0, v.ConfidenceScore, 1e-9)
}

func TestAggregateEmptyInput(t *testing.T) {
	_, err := Aggregate(nil, 0.5)
	assert.ErrorIs(t, err, entity.ErrEmptyInput)
}

func TestAggregateInvalidThreshold(t *testing.T) {
	_, err := Aggregate(scoresFromFakes(0.5), 1.5)
	assert.ErrorIs(t, err, entity.ErrInvalidThreshold)

	_, err = Aggregate(scoresFromFakes(0.5), -0.1)
	assert.ErrorIs(t, err, entity.ErrInvalidThreshold)

	_, err = ScoreImage(entity.FrameScore{FakeProbability: 0.5, RealProbability: 0.5}, 2.0)
	assert.ErrorIs(t, err, entity.ErrInvalidThreshold)
}

func TestScoreImageHuman(t *testing.T) {
	iv, err := ScoreImage(entity.FrameScore{FakeProbability: 0.2, RealProbability: 0.8}, 0.5)
	require.NoError(t, err)
	assert.False(t, iv.IsAIGenerated)
	assert.InDelta(t, 80.0, iv.ConfidenceScore, 1e-9)
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore(entity.FrameScore{FakeProbability: 0.6, RealProbability: 0.4}))
	assert.NoError(t, ValidateScore(entity.FrameScore{FakeProbability: 0.501, RealProbability: 0.5}))

	err := ValidateScore(entity.FrameScore{FakeProbability: 0.6, RealProbability: 0.6})
	assert.ErrorIs(t, err, entity.ErrClassifierContract)

	err = ValidateScore(entity.FrameScore{FakeProbability: 0.1, RealProbability: 0.1})
	assert.ErrorIs(t, err, entity.ErrClassifierContract)
}
