package cfg

import "strings"

// Word is an ordered, finite sequence of Letters. The empty word is
// represented by a Word of length zero (a nil or empty slice; the two are
// treated identically everywhere in this package).
type Word []Letter

// Epsilon is the empty word.
var Epsilon = Word{}

// IsEmpty returns whether w is the empty word.
func (w Word) IsEmpty() bool {
	return len(w) == 0
}

// Copy returns a shallow copy of w; since Letter is itself immutable, this
// is a full value copy.
func (w Word) Copy() Word {
	cp := make(Word, len(w))
	copy(cp, w)
	return cp
}

// Equal returns whether w and o contain the same Letters in the same order.
func (w Word) Equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// String gives a space-separated rendering of w's letters, or "ε" if w is
// empty.
func (w Word) String() string {
	if w.IsEmpty() {
		return "ε"
	}
	names := make([]string, len(w))
	for i, l := range w {
		names[i] = l.Name
	}
	return strings.Join(names, " ")
}

// Format renders w the way it would appear on the output side of a rule
// line in the given MinFormat.
func (w Word) Format(f MinFormat) string {
	if w.IsEmpty() {
		return "e"
	}
	parts := make([]string, len(w))
	for i, l := range w {
		parts[i] = l.Format(f)
	}
	if f == FormatChar {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, " ")
}
