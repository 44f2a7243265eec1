package styling

import "sort"

// Range styles the rune offsets [Start, End) of the text.
type Range struct {
	Start int
	End   int
	Style Style
}

// Overlaps reports whether the half-open intervals of r and o intersect.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// SameBounds reports whether r and o cover exactly the same interval.
func (r Range) SameBounds(o Range) bool {
	return r.Start == o.Start && r.End == o.End
}

// Contains reports whether the rune offset pos falls inside r.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// RangeSet is kept sorted by Start. No two members overlap, and no two share
// the same bounds. The functions below never mutate their argument.
type RangeSet []Range

// Insert declares [start, end) with the given patch.
//
// If a range with identical bounds exists, the patch is merged over its style.
// Otherwise every range that overlaps the new interval is dropped whole (not
// clipped) and the new range, styled as patch applied to fallback, is added.
// Empty or inverted intervals leave the set unchanged.
func Insert(set RangeSet, start, end int, patch StylePatch, fallback Style) RangeSet {
	if start < 0 || start >= end {
		return set
	}
	probe := Range{Start: start, End: end}

	for i, existing := range set {
		if existing.SameBounds(probe) {
			out := set.Clone()
			out[i].Style = patch.Apply(existing.Style)
			return out
		}
	}

	out := make(RangeSet, 0, len(set)+1)
	for _, existing := range set {
		if existing.Overlaps(probe) {
			continue
		}
		out = append(out, existing)
	}
	probe.Style = patch.Apply(fallback)
	out = append(out, probe)
	sortByStart(out)
	return out
}

// InsertRange inserts a fully specified range.
func InsertRange(set RangeSet, r Range) RangeSet {
	return Insert(set, r.Start, r.End, FullPatch(r.Style), r.Style)
}

// Remove deletes the range at index. Out-of-bounds indices are ignored.
func Remove(set RangeSet, index int) RangeSet {
	if index < 0 || index >= len(set) {
		return set
	}
	out := make(RangeSet, 0, len(set)-1)
	out = append(out, set[:index]...)
	return append(out, set[index+1:]...)
}

// Clear returns an empty set.
func Clear() RangeSet {
	return nil
}

// Clone returns an independent copy of the set.
func (s RangeSet) Clone() RangeSet {
	if s == nil {
		return nil
	}
	out := make(RangeSet, len(s))
	copy(out, s)
	return out
}

// IndexAt returns the index of the range covering pos, or -1.
func (s RangeSet) IndexAt(pos int) int {
	for i, r := range s {
		if r.Contains(pos) {
			return i
		}
		if r.Start > pos {
			break
		}
	}
	return -1
}

// Valid reports whether the set is sorted and free of overlaps.
func (s RangeSet) Valid() bool {
	for i := 1; i < len(s); i++ {
		if s[i-1].Start > s[i].Start {
			return false
		}
		if s[i-1].Overlaps(s[i]) || s[i-1].SameBounds(s[i]) {
			return false
		}
	}
	return true
}

func sortByStart(set RangeSet) {
	sort.SliceStable(set, func(i, j int) bool {
		return set[i].Start < set[j].Start
	})
}
