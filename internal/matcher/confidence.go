package matcher

import "strings"

// titleConfidence scores how likely a cleaned leading chunk is an actual
// title rather than leftover release noise. Penalties stack; the result is
// clamped to [0, 1].
func titleConfidence(title, original string) float64 {
	confidence := 0.8
	lower := strings.ToLower(title)

	if _, isTag := releaseTokenSet[lower]; isTag {
		confidence -= 0.7
	}

	if len(title) < 3 {
		confidence -= 0.4
	}

	if len(title) > 4 && allCapsRe.MatchString(title) {
		confidence -= 0.2
	}

	words := strings.Fields(title)
	if len(words) == 1 && len(title) > 2 {
		confidence -= 0.1
	}

	// A year in the original name usually means a well-formed release
	// with the title up front.
	if yearRe.MatchString(original) {
		confidence += 0.1
	}

	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	return confidence
}
