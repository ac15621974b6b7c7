package entity

import "errors"

// Terminal failures for the current request. None of these are retried
// internally; a classification that fails must abort the analysis rather than
// being scored as "real" by default.
var (
	// ErrNoFrames indicates the sampler found nothing to sample (zero frames
	// or zero FPS reported by the container).
	ErrNoFrames = errors.New("no frames could be extracted from video")

	// ErrEmptyInput indicates the aggregator received zero scores.
	ErrEmptyInput = errors.New("no scores provided for aggregation")

	// ErrClassifierContract indicates the classifier returned probabilities
	// that do not sum to ~1, or the classification call itself failed.
	ErrClassifierContract = errors.New("classifier contract violation")

	// ErrInvalidThreshold indicates a decision threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be between 0.0 and 1.0")

	// ErrNoText indicates a document yielded no analyzable text chunks.
	ErrNoText = errors.New("no valid text chunks to analyze")

	// ErrUnsupportedFormat indicates a file extension outside the allow-list.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidURL indicates a malformed or unsupported URL.
	ErrInvalidURL = errors.New("invalid URL")
)
