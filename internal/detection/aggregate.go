package detection

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/veriscan/veriscan-detection-service/internal/domain/entity"
)

// DefaultThreshold is the decision boundary used when a request does not
// override it.
const DefaultThreshold = 0.5

// probSumTolerance bounds how far fake+real may drift from 1 before the
// classifier output is rejected as a contract violation.
const probSumTolerance = 0.01

// Decision constants. These are empirically tuned; changing them changes
// detection behavior on partially manipulated content.
const (
	fakeRatioTrigger = 0.3 // flag when >30% of frames look fake
	maxFakeTrigger   = 0.8 // ...or one frame is strongly fake
	maxFakeAvgFloor  = 0.4 // ...provided the average is not negligible

	fakeAvgWeight = 0.6
	fakeMaxWeight = 0.4
	realAvgWeight = 0.7
	realMaxWeight = 0.3
)

// ValidateThreshold rejects decision thresholds outside [0, 1].
func ValidateThreshold(threshold float64) error {
	if threshold < 0.0 || threshold > 1.0 {
		return fmt.Errorf("%w: got %v", entity.ErrInvalidThreshold, threshold)
	}
	return nil
}

// ValidateScore rejects classifier outputs whose probabilities do not sum
// to ~1. We surface the violation instead of silently normalizing, so a
// misbehaving model aborts the analysis rather than biasing it.
func ValidateScore(score entity.FrameScore) error {
	sum := score.FakeProbability + score.RealProbability
	if math.Abs(sum-1.0) > probSumTolerance {
		return fmt.Errorf("%w: probabilities sum to %v", entity.ErrClassifierContract, sum)
	}
	return nil
}

// Aggregate combines per-frame scores into a single verdict.
//
// A video is flagged AI-generated when ANY of the following holds:
//   - the average fake probability exceeds the threshold,
//   - more than 30% of frames individually exceed the threshold,
//   - a single frame exceeds 0.8 while the average exceeds 0.4.
//
// The OR of three signals catches partial manipulation (e.g. face-swapped
// segments) that a plain average would dilute.
func Aggregate(scores []entity.FrameScore, threshold float64) (*entity.Verdict, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, entity.ErrEmptyInput
	}

	fakes := make([]float64, len(scores))
	reals := make([]float64, len(scores))
	fakeFrames := 0
	maxFake := 0.0
	for i, s := range scores {
		fakes[i] = s.FakeProbability
		reals[i] = s.RealProbability
		if s.FakeProbability > threshold {
			fakeFrames++
		}
		if s.FakeProbability > maxFake {
			maxFake = s.FakeProbability
		}
	}

	avgFake := stat.Mean(fakes, nil)
	avgReal := stat.Mean(reals, nil)
	stdFake := stat.PopStdDev(fakes, nil)

	sorted := append([]float64(nil), fakes...)
	sort.Float64s(sorted)
	medianFake := median(sorted)

	fakeRatio := float64(fakeFrames) / float64(len(scores))

	isAI := avgFake > threshold ||
		fakeRatio > fakeRatioTrigger ||
		(maxFake > maxFakeTrigger && avgFake > maxFakeAvgFloor)

	var confidence float64
	if isAI {
		confidence = avgFake*fakeAvgWeight + maxFake*fakeMaxWeight
	} else {
		confidence = avgReal*realAvgWeight + (1-maxFake)*realMaxWeight
	}

	return &entity.Verdict{
		IsAIGenerated:      isAI,
		ConfidenceScore:    toPercent(confidence),
		AvgFakeProbability: round4(avgFake),
		AvgRealProbability: round4(avgReal),
		MaxFakeProbability: round4(maxFake),
		MedianFakeProb:     round4(medianFake),
		StdFakeProbability: round4(stdFake),
		FakeFrameRatio:     round4(fakeRatio),
		FramesAnalyzed:     len(scores),
	}, nil
}

// ScoreImage is the single-frame variant: a plain threshold comparison with
// no distribution statistics.
func ScoreImage(score entity.FrameScore, threshold float64) (*entity.ImageVerdict, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	isAI := score.FakeProbability > threshold
	confidence := score.RealProbability
	if isAI {
		confidence = score.FakeProbability
	}

	return &entity.ImageVerdict{
		IsAIGenerated:   isAI,
		ConfidenceScore: toPercent(confidence),
		FakeProbability: round4(score.FakeProbability),
		RealProbability: round4(score.RealProbability),
	}, nil
}

// median expects its input sorted and averages the middle pair for even
// lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// toPercent scales a [0,1] confidence to a percentage rounded to 2 decimals.
func toPercent(v float64) float64 {
	return math.Round(v*100*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
