package entity

// FrameScore is the per-frame output of the classifier: the two class
// probabilities, which must sum to ~1.
type FrameScore struct {
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
}

// Verdict is the aggregate result of a video analysis. It is created once per
// request, never mutated afterwards and never persisted.
type Verdict struct {
	IsAIGenerated       bool    `json:"is_ai_generated"`
	ConfidenceScore     float64 `json:"confidence_score"`
	AvgFakeProbability  float64 `json:"avg_fake_probability"`
	AvgRealProbability  float64 `json:"avg_real_probability"`
	MaxFakeProbability  float64 `json:"max_fake_probability"`
	MedianFakeProb      float64 `json:"median_fake_probability"`
	StdFakeProbability  float64 `json:"std_fake_probability"`
	FakeFrameRatio      float64 `json:"fake_frame_ratio"`
	FramesAnalyzed      int     `json:"frames_analyzed"`
}

// ImageVerdict is the single-frame variant: one score, no distribution
// statistics.
type ImageVerdict struct {
	IsAIGenerated   bool    `json:"is_ai_generated"`
	ConfidenceScore float64 `json:"confidence_score"`
	FakeProbability float64 `json:"fake_probability"`
	RealProbability float64 `json:"real_probability"`
}

// DocumentVerdict aggregates per-chunk text scores with the same decision
// rule as Verdict; ChunksAnalyzed counts the chunks that actually scored.
type DocumentVerdict struct {
	IsAIGenerated      bool    `json:"is_ai_generated"`
	ConfidenceScore    float64 `json:"confidence_score"`
	AvgFakeProbability float64 `json:"avg_ai_probability"`
	AvgRealProbability float64 `json:"avg_human_probability"`
	ChunksAnalyzed     int     `json:"chunks_analyzed"`
}
