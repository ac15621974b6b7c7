package detection

import "strings"

// LabelMapping maps the classifier's positional outputs to named classes.
// It is resolved once when the model metadata is loaded, not per inference
// call: label order is not guaranteed stable across model versions, and
// trusting positional order blindly has flipped verdicts in the past.
type LabelMapping struct {
	FakeIndex    int
	RealIndex    int
	FromMetadata bool
}

var (
	fakeMarkers = []string{"fake", "ai", "generated"}
	realMarkers = []string{"real", "authentic", "human"}
)

// ResolveLabels inspects the model's label metadata and returns the index of
// the fake and real classes. When metadata is absent, ambiguous, or does not
// describe exactly one class of each kind, it falls back to the conventional
// order: index 0 = fake, index 1 = real.
func ResolveLabels(labels []string) LabelMapping {
	fallback := LabelMapping{FakeIndex: 0, RealIndex: 1}
	if len(labels) != 2 {
		return fallback
	}

	fakeIdx, realIdx := -1, -1
	for i, label := range labels {
		l := strings.ToLower(label)
		switch {
		case matchesAny(l, fakeMarkers):
			if fakeIdx >= 0 {
				return fallback // two fake-looking labels
			}
			fakeIdx = i
		case matchesAny(l, realMarkers):
			if realIdx >= 0 {
				return fallback
			}
			realIdx = i
		}
	}

	if fakeIdx < 0 || realIdx < 0 || fakeIdx == realIdx {
		return fallback
	}
	return LabelMapping{FakeIndex: fakeIdx, RealIndex: realIdx, FromMetadata: true}
}

func matchesAny(label string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(label, m) {
			return true
		}
	}
	return false
}
