package guess

import (
	"strconv"
	"strings"
	"time"

	"github.com/duramato/guessit/internal/lang"
)

// Value is the tagged union of everything a guessed property can hold:
// text, an integer, a calendar date, a resolved language, or an ordered
// sequence of these (for appendable properties such as episode numbers).
type Value interface {
	isValue()
	String() string
}

// Str is a text value.
type Str string

// Int is an integer value (season numbers, episode numbers, years...).
type Int int

// Date is a calendar date value.
type Date struct {
	time.Time
}

// Lang is a resolved language value.
type Lang struct {
	lang.Language
}

// List is an ordered sequence of values, used by appendable properties.
type List []Value

func (Str) isValue()  {}
func (Int) isValue()  {}
func (Date) isValue() {}
func (Lang) isValue() {}
func (List) isValue() {}

func (s Str) String() string { return string(s) }

func (i Int) String() string { return strconv.Itoa(int(i)) }

func (d Date) String() string { return d.Format("2006-01-02") }

func (l Lang) String() string { return l.Language.String() }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// NewDate wraps a time.Time as a date value, dropping the time-of-day part.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Equal reports whether two values are the same, comparing lists
// element-wise in order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Date:
		bv, ok := b.(Date)
		return ok && av.Time.Equal(bv.Time)
	case Lang:
		bv, ok := b.(Lang)
		return ok && av.Language == bv.Language
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return false
}
