package segment

import (
	"sort"

	"github.com/grailbio/base/errors"
)

// SegmentList is an ordered sequence of Segments, together with a flag
// recording whether it currently satisfies the normalized invariants:
// sorted by Start, pairwise disjoint, non-adjacent, and free of empty
// segments. Set-algebraic operations (Intersect, OverlapWithRange, ...)
// require both operands to be normalized.
//
// The zero value is an empty SegmentList that is not marked normalized;
// New returns an empty, normalized one.
type SegmentList struct {
	segments     []Segment
	isNormalized bool
}

// New returns an empty, normalized SegmentList.
func New() *SegmentList {
	return &SegmentList{isNormalized: true}
}

// NewFromPairs builds a SegmentList from a slice of (start, end) pairs, in
// the order given. If normalize is true, Normalize is called before
// returning. Returns InvalidSegment if any pair has end < start or a
// negative start.
func NewFromPairs(pairs [][2]PosType, normalize bool) (*SegmentList, error) {
	sl := &SegmentList{segments: make([]Segment, 0, len(pairs))}
	for _, p := range pairs {
		s, err := newSegment(p[0], p[1])
		if err != nil {
			return nil, err
		}
		sl.segments = append(sl.segments, s)
	}
	if normalize {
		sl.Normalize()
	}
	return sl, nil
}

// Clone returns a new SegmentList with an independent copy of the
// underlying storage; mutating the clone never affects the source.
func (sl *SegmentList) Clone() *SegmentList {
	out := &SegmentList{
		segments:     make([]Segment, len(sl.segments)),
		isNormalized: sl.isNormalized,
	}
	copy(out.segments, sl.segments)
	return out
}

// Add appends [start, end) to the tail of the list. IsNormalized remains
// true only if the new segment is non-empty and strictly after the
// previous tail segment; otherwise it becomes false. O(1) amortized.
func (sl *SegmentList) Add(start, end PosType) error {
	s, err := newSegment(start, end)
	if err != nil {
		return err
	}
	if sl.isNormalized {
		n := len(sl.segments)
		if s.Len() == 0 || (n > 0 && s.Start <= sl.segments[n-1].End) {
			sl.isNormalized = false
		}
	}
	sl.segments = append(sl.segments, s)
	return nil
}

// Extend concatenates other's segments onto sl. Always clears
// IsNormalized, since relative order between the two runs is unknown.
func (sl *SegmentList) Extend(other *SegmentList) {
	sl.segments = append(sl.segments, other.segments...)
	sl.isNormalized = false
}

// Clear empties the list. The result is normalized.
func (sl *SegmentList) Clear() {
	sl.segments = sl.segments[:0]
	sl.isNormalized = true
}

// Len returns the number of segments.
func (sl *SegmentList) Len() int { return len(sl.segments) }

// Sum returns the total nucleotide mass, Σ(End - Start).
func (sl *SegmentList) Sum() PosType {
	var total PosType
	for _, s := range sl.segments {
		total += s.Len()
	}
	return total
}

// IsEmpty reports whether the list has no segments, or sums to zero.
func (sl *SegmentList) IsEmpty() bool {
	return len(sl.segments) == 0 || sl.Sum() == 0
}

// IsNormalized reports whether the normalized invariants currently hold.
func (sl *SegmentList) IsNormalized() bool { return sl.isNormalized }

// AsSlice returns the underlying sequence of segments as an immutable
// view. Callers must not mutate the returned slice.
func (sl *SegmentList) AsSlice() []Segment { return sl.segments }

// Normalize sorts by Start, then sweeps, merging overlapping and adjacent
// segments and dropping empties. Idempotent: Normalize(Normalize(x)) ==
// Normalize(x). O(n log n).
func (sl *SegmentList) Normalize() {
	if sl.isNormalized {
		return
	}
	segs := sl.segments
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].Start != segs[j].Start {
			return segs[i].Start < segs[j].Start
		}
		return segs[i].End < segs[j].End
	})
	out := segs[:0]
	for _, s := range segs {
		if s.Len() == 0 {
			continue
		}
		n := len(out)
		if n > 0 && s.Start <= out[n-1].End {
			if s.End > out[n-1].End {
				out[n-1].End = s.End
			}
			continue
		}
		out = append(out, s)
	}
	sl.segments = out
	sl.isNormalized = true
}

// requireNormalized returns NotNormalized if either operand is not
// normalized.
func requireNormalized(op string, lists ...*SegmentList) error {
	for _, l := range lists {
		if !l.isNormalized {
			return errors.E(errors.Precondition, op, "operand is not normalized")
		}
	}
	return nil
}
