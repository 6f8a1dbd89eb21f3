package guess

import "strings"

// Chooser reconciles two conflicting candidates for the same property into
// one value and confidence.
type Chooser func(v1 Value, c1 float64, v2 Value, c2 float64) (Value, float64)

// combineConfidence treats the two scores as independent evidence for the
// same value: 1-(1-c1)(1-c2), always >= max(c1, c2).
func combineConfidence(c1, c2 float64) float64 {
	return 1 - (1-c1)*(1-c2)
}

// ChooseInt reconciles two candidates by plain equality. Equal values
// reinforce each other; on a genuine conflict the higher-confidence value
// wins, discounted by the strength of the contradicting evidence.
//
// When the confidences are exactly equal the second candidate wins. That
// tie-break is an inherited artifact of the original control flow, kept
// deliberately; see the regression test before changing it.
func ChooseInt(v1 Value, c1 float64, v2 Value, c2 float64) (Value, float64) {
	if Equal(v1, v2) {
		return v1, combineConfidence(c1, c2)
	}
	if c1 > c2 {
		return v1, c1 - c2
	}
	return v2, c2 - c1
}

// ChooseString reconciles two text candidates with string-similarity
// heuristics before falling back to confidence arithmetic:
//
//  1. case-insensitive equality reinforces;
//  2. "The X" vs "X" keeps the "The "-prefixed variant;
//  3. a substring match keeps the shorter string (assumed canonical);
//  4. otherwise the higher-confidence value wins with |c1-c2|, second
//     candidate winning exact ties as in ChooseInt.
//
// The returned value preserves the winner's original casing. Non-text
// values fall back to ChooseInt semantics.
func ChooseString(v1 Value, c1 float64, v2 Value, c2 float64) (Value, float64) {
	s1, ok1 := v1.(Str)
	s2, ok2 := v2.(Str)
	if !ok1 || !ok2 {
		return ChooseInt(v1, c1, v2, c2)
	}

	t1 := strings.TrimSpace(string(s1))
	t2 := strings.TrimSpace(string(s2))
	l1 := strings.ToLower(t1)
	l2 := strings.ToLower(t2)

	combined := combineConfidence(c1, c2)

	switch {
	case l1 == l2:
		return Str(t1), combined
	case l1 == "the "+l2:
		return Str(t1), combined
	case l2 == "the "+l1:
		return Str(t2), combined
	case strings.Contains(l1, l2):
		return Str(t2), combined
	case strings.Contains(l2, l1):
		return Str(t1), combined
	}

	if c1 > c2 {
		return Str(t1), c1 - c2
	}
	return Str(t2), c2 - c1
}
