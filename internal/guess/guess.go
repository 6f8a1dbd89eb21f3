// Package guess implements the confidence-weighted metadata record and the
// merge pipeline that reduces many overlapping guesses about a filename
// into one coherent result.
//
// A Guess is the atomic unit: an insertion-ordered property bag where every
// property carries its own confidence score. Guesses produced by the
// pattern matchers are reconciled pairwise per property, accumulated for
// appendable properties, and finally folded into a single record.
package guess

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KeyError reports a confidence lookup for a property the guess does not
// hold. It signals a caller bug, not bad input data.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("guess: no such property %q", e.Key)
}

// Guess is a confidence-annotated property record. Property iteration
// follows insertion order so that merge results are deterministic.
//
// Guesses are mutated in place by the merge pipeline; once submitted to it,
// ownership transfers and callers must not retain references to
// intermediate guesses.
type Guess struct {
	order      []string
	values     map[string]Value
	confidence map[string]float64
}

// New returns an empty guess.
func New() *Guess {
	return &Guess{
		values:     make(map[string]Value),
		confidence: make(map[string]float64),
	}
}

// Get returns the value for key, and whether it is present.
func (g *Guess) Get(key string) (Value, bool) {
	v, ok := g.values[key]
	return v, ok
}

// Has reports whether the guess holds key.
func (g *Guess) Has(key string) bool {
	_, ok := g.values[key]
	return ok
}

// Len returns the number of properties held.
func (g *Guess) Len() int {
	return len(g.order)
}

// Keys returns the property names in insertion order. The returned slice
// is a copy.
func (g *Guess) Keys() []string {
	keys := make([]string, len(g.order))
	copy(keys, g.order)
	return keys
}

// Set inserts or overwrites the value for key, leaving any prior
// confidence untouched. A first insert without confidence defaults to 0.
func (g *Guess) Set(key string, v Value) {
	if _, ok := g.values[key]; !ok {
		g.order = append(g.order, key)
		g.confidence[key] = 0
	}
	g.values[key] = v
}

// SetWithConfidence inserts or overwrites both the value and the
// confidence for key.
func (g *Guess) SetWithConfidence(key string, v Value, confidence float64) {
	g.Set(key, v)
	g.confidence[key] = confidence
}

// SetConfidence overwrites the confidence for key. Setting confidence on
// an absent key is ignored.
func (g *Guess) SetConfidence(key string, confidence float64) {
	if _, ok := g.values[key]; ok {
		g.confidence[key] = confidence
	}
}

// Confidence returns the confidence recorded for key. Asking about a
// property the guess does not hold returns a *KeyError.
func (g *Guess) Confidence(key string) (float64, error) {
	if _, ok := g.values[key]; !ok {
		return 0, &KeyError{Key: key}
	}
	return g.confidence[key], nil
}

// Delete removes key and its confidence. Unknown keys are a no-op.
func (g *Guess) Delete(key string) {
	if _, ok := g.values[key]; !ok {
		return
	}
	delete(g.values, key)
	delete(g.confidence, key)
	for i, k := range g.order {
		if k == key {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Update copies every property of other into g, value and confidence both.
// Existing properties are overwritten unconditionally.
func (g *Guess) Update(other *Guess) {
	for _, key := range other.order {
		g.SetWithConfidence(key, other.values[key], other.confidence[key])
	}
}

// UpdateWithConfidence copies every property of other into g, forcing the
// given uniform confidence onto all copied keys. The explicit confidence
// wins over the confidences recorded on other.
func (g *Guess) UpdateWithConfidence(other *Guess, confidence float64) {
	for _, key := range other.order {
		g.SetWithConfidence(key, other.values[key], confidence)
	}
}

// UpdateHighestConfidence copies each property of other into g only when g
// does not already hold it with at least the same confidence. Ties keep
// the pre-existing value, which makes repeated folds deterministic.
func (g *Guess) UpdateHighestConfidence(other *Guess) {
	for _, key := range other.order {
		if _, ok := g.values[key]; ok && g.confidence[key] >= other.confidence[key] {
			continue
		}
		g.SetWithConfidence(key, other.values[key], other.confidence[key])
	}
}

// Clone returns a deep-enough copy: list values are copied, scalar values
// are immutable and shared.
func (g *Guess) Clone() *Guess {
	c := New()
	for _, key := range g.order {
		v := g.values[key]
		if list, ok := v.(List); ok {
			dup := make(List, len(list))
			copy(dup, list)
			v = dup
		}
		c.SetWithConfidence(key, v, g.confidence[key])
	}
	return c
}

// String renders the guess as a compact property list with confidences,
// for logs and debugging.
func (g *Guess) String() string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.order {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s: %s [%.2f]", key, g.values[key], g.confidence[key])
	}
	buf.WriteByte('}')
	return buf.String()
}

// MarshalJSON renders the plain form: an object mapping property names to
// values, in insertion order. Use Advanced for the confidence-annotated
// form.
func (g *Guess) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, key); err != nil {
			return nil, err
		}
		if err := writeJSONValue(&buf, g.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Advanced wraps a Guess so it marshals each property as
// {"value": ..., "confidence": ...}.
type Advanced struct {
	*Guess
}

// MarshalJSON renders the advanced form, preserving insertion order.
func (a Advanced) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range a.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONKey(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteString(`{"value":`)
		if err := writeJSONValue(&buf, a.values[key]); err != nil {
			return nil, err
		}
		fmt.Fprintf(&buf, `,"confidence":%s}`, formatConfidence(a.confidence[key]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func formatConfidence(c float64) string {
	b, _ := json.Marshal(c)
	return string(b)
}

func writeJSONKey(buf *bytes.Buffer, key string) error {
	b, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(b)
	buf.WriteByte(':')
	return nil
}

func writeJSONValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Int:
		buf.WriteString(val.String())
		return nil
	case List:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		b, err := json.Marshal(v.String())
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
