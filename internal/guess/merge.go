package guess

import (
	"log/slog"
)

// DefaultNoiseThreshold is the confidence below which a property is
// dropped from the final result as noise.
const DefaultNoiseThreshold = 0.05

// Merger runs the merge pipeline over working lists of guesses. It holds
// no per-run state; one Merger can serve any number of independent runs as
// long as their guess lists are disjoint.
type Merger struct {
	log            *slog.Logger
	noiseThreshold float64
}

// Option configures a Merger.
type Option func(*Merger)

// WithNoiseThreshold overrides the confidence floor applied during final
// reduction.
func WithNoiseThreshold(t float64) Option {
	return func(m *Merger) {
		m.noiseThreshold = t
	}
}

// NewMerger returns a Merger logging through the given logger. A nil
// logger falls back to slog.Default(). Logging is advisory only and never
// affects merge results.
func NewMerger(logger *slog.Logger, opts ...Option) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Merger{
		log:            logger,
		noiseThreshold: DefaultNoiseThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sharedProperties counts the property names two guesses have in common.
func sharedProperties(g1, g2 *Guess) int {
	n := 0
	for _, key := range g1.order {
		if g2.Has(key) {
			n++
		}
	}
	return n
}

// carrierIndices returns the indices of the guesses holding prop, in list
// order.
func carrierIndices(guesses []*Guess, prop string) []int {
	var idx []int
	for i, g := range guesses {
		if g.Has(prop) {
			idx = append(idx, i)
		}
	}
	return idx
}

func removeAt(guesses []*Guess, i int) []*Guess {
	return append(guesses[:i], guesses[i+1:]...)
}

// mergeSimilarOnce merges the first two guesses carrying prop into one.
// The reconciled value lands in the second guess, which is then absorbed
// into the first via plain Update (not confidence-aware; the asymmetry is
// inherited behavior) and removed from the list.
//
// If the two guesses share more than one property the merge would be
// ambiguous: it is skipped with a warning and the list is returned
// unchanged, reported as no progress.
func (m *Merger) mergeSimilarOnce(guesses []*Guess, prop string, choose Chooser) ([]*Guess, bool) {
	idx := carrierIndices(guesses, prop)
	g1, g2 := guesses[idx[0]], guesses[idx[1]]

	if sharedProperties(g1, g2) > 1 {
		m.log.Warn("guesses to merge share more than one property, skipping",
			"property", prop, "first", g1.String(), "second", g2.String())
		return guesses, false
	}

	v1, _ := g1.Get(prop)
	v2, _ := g2.Get(prop)
	c1 := g1.confidence[prop]
	c2 := g2.confidence[prop]

	newValue, newConfidence := choose(v1, c1, v2, c2)
	if newConfidence >= c1 {
		m.log.Debug("updated matching property", "property", prop, "value", newValue.String(), "confidence", newConfidence)
	} else {
		m.log.Debug("updated non-matching property", "property", prop, "value", newValue.String(), "confidence", newConfidence)
	}

	g2.SetWithConfidence(prop, newValue, newConfidence)
	g1.Update(g2)
	return removeAt(guesses, idx[1]), true
}

// MergeSimilar repeatedly merges guesses carrying prop pairwise,
// left-to-right, until fewer than two carriers remain or a step makes no
// progress (an ambiguous pair). It returns the shortened list.
func (m *Merger) MergeSimilar(guesses []*Guess, prop string, choose Chooser) []*Guess {
	for len(carrierIndices(guesses, prop)) >= 2 {
		var merged bool
		guesses, merged = m.mergeSimilarOnce(guesses, prop, choose)
		if !merged {
			break
		}
	}
	return guesses
}

// MergeAppend collapses every guess carrying prop into the first one,
// accumulating the values into an ordered list instead of reconciling
// them. Non-prop properties of consumed guesses are copied over,
// last-writer-wins; a collision is unexpected and logged but not fatal.
func (m *Merger) MergeAppend(guesses []*Guess, prop string) []*Guess {
	idx := carrierIndices(guesses, prop)
	if len(idx) == 0 {
		return guesses
	}

	acc := guesses[idx[0]]
	seed, _ := acc.Get(prop)
	acc.Set(prop, List{seed})

	for _, i := range idx[1:] {
		g := guesses[i]
		for _, key := range g.Keys() {
			v, _ := g.Get(key)
			if key == prop {
				cur, _ := acc.Get(prop)
				acc.Set(prop, append(cur.(List), v))
				continue
			}
			if acc.Has(key) {
				m.log.Warn("overwriting property while appending",
					"property", key, "value", v.String())
			}
			acc.SetWithConfidence(key, v, g.confidence[key])
		}
	}

	// Drop consumed guesses, keeping the accumulator. Indices shift as
	// we remove, so walk back-to-front.
	for k := len(idx) - 1; k >= 1; k-- {
		guesses = removeAt(guesses, idx[k])
	}
	return guesses
}

// MergeAll folds the whole working list into a single result guess.
// Appendable properties are accumulated first, everything else merges
// highest-confidence-wins. Properties scoring below the noise threshold
// are pruned, and appended lists are collapsed to their distinct values.
func (m *Merger) MergeAll(guesses []*Guess, appendProps []string) *Guess {
	if len(guesses) == 0 {
		return New()
	}

	result := guesses[0]

	for _, g := range guesses[1:] {
		for _, prop := range appendProps {
			v, ok := g.Get(prop)
			if !ok {
				continue
			}
			cur, exists := result.Get(prop)
			var seq List
			switch {
			case !exists:
				seq = List{}
			default:
				if l, isList := cur.(List); isList {
					seq = l
				} else {
					seq = List{cur}
				}
			}
			result.SetWithConfidence(prop, append(seq, v), g.confidence[prop])
			g.Delete(prop)
		}

		for _, key := range g.Keys() {
			if cur, ok := result.Get(key); ok {
				if v, _ := g.Get(key); !Equal(cur, v) {
					m.log.Warn("conflicting property in merged result",
						"property", key, "kept", cur.String(), "incoming", v.String())
				}
			}
		}
		result.UpdateHighestConfidence(g)
	}

	for _, key := range result.Keys() {
		if result.confidence[key] < m.noiseThreshold {
			result.Delete(key)
		}
	}

	for _, prop := range appendProps {
		if v, ok := result.Get(prop); ok {
			if list, isList := v.(List); isList {
				result.Set(prop, distinct(list))
			}
		}
	}

	return result
}

// distinct removes duplicate values, keeping first occurrences in order.
func distinct(list List) List {
	out := make(List, 0, len(list))
	for _, v := range list {
		dup := false
		for _, seen := range out {
			if Equal(seen, v) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}
