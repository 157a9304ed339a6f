package segment

import (
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/gat/histogram"
)

// searchFirstEndAfter returns the index of the first segment whose End is
// strictly greater than pos, via binary search -- the same idiom
// interval/endpoint_index.go uses for SearchPosTypes, adapted to a slice
// of Segment instead of a flat endpoint array.
func searchFirstEndAfter(segs []Segment, pos PosType) int {
	return sort.Search(len(segs), func(i int) bool { return segs[i].End > pos })
}

// OverlapWithRange returns the nucleotide count of sl's intersection with
// [a, b). Requires sl to be normalized. O(log n + k) where k is the
// number of overlapping segments.
func (sl *SegmentList) OverlapWithRange(a, b PosType) (PosType, error) {
	if err := requireNormalized("segment.OverlapWithRange", sl); err != nil {
		return 0, err
	}
	if b <= a {
		return 0, nil
	}
	segs := sl.segments
	idx := searchFirstEndAfter(segs, a)
	var total PosType
	for ; idx < len(segs) && segs[idx].Start < b; idx++ {
		start := segs[idx].Start
		end := segs[idx].End
		if start < a {
			start = a
		}
		if end > b {
			end = b
		}
		total += end - start
	}
	return total, nil
}

// Intersect returns a new normalized SegmentList equal to the set
// intersection of sl and other, via a two-pointer merge over the sorted
// inputs. Requires both operands normalized. O(m+n). Commutative:
// a.Intersect(b).AsSlice() == b.Intersect(a).AsSlice().
func (sl *SegmentList) Intersect(other *SegmentList) (*SegmentList, error) {
	if err := requireNormalized("segment.Intersect", sl, other); err != nil {
		return nil, err
	}
	out := &SegmentList{isNormalized: true}
	a, b := sl.segments, other.segments
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		start := a[i].Start
		if b[j].Start > start {
			start = b[j].Start
		}
		end := a[i].End
		if b[j].End < end {
			end = b[j].End
		}
		if start < end {
			out.segments = append(out.segments, Segment{Start: start, End: end})
		}
		if a[i].End < b[j].End {
			i++
		} else {
			j++
		}
	}
	return out, nil
}

// IntersectionWithSegments returns the number of segments in sl that
// overlap at least one segment in other, via a two-pointer walk. Requires
// both operands normalized. O(m+n).
func (sl *SegmentList) IntersectionWithSegments(other *SegmentList) (int, error) {
	if err := requireNormalized("segment.IntersectionWithSegments", sl, other); err != nil {
		return 0, err
	}
	a, b := sl.segments, other.segments
	i, j := 0, 0
	count := 0
	counted := false
	for i < len(a) && j < len(b) {
		if a[i].End <= b[j].Start {
			i++
			counted = false
			continue
		}
		if b[j].End <= a[i].Start {
			j++
			continue
		}
		// a[i] and b[j] overlap; count a[i] at most once no matter how
		// many b segments it goes on to overlap.
		if !counted {
			count++
			counted = true
		}
		if a[i].End < b[j].End {
			i++
			counted = false
		} else {
			j++
		}
	}
	return count, nil
}

// Filter returns sl clipped to workspace: every segment replaced by its
// intersection with workspace's segments. Equivalent to
// sl.Intersect(workspace) but named per spec for the common "restrict to
// workspace" use case. Requires both operands normalized.
func (sl *SegmentList) Filter(workspace *SegmentList) (*SegmentList, error) {
	return sl.Intersect(workspace)
}

// LengthDistribution returns the empirical length histogram of sl's
// segments, bucketed by bucketSize and covering lengths up to maxLength.
func (sl *SegmentList) LengthDistribution(bucketSize, maxLength PosType) (*histogram.LengthHistogram, error) {
	if bucketSize < 1 {
		return nil, errors.E(errors.Invalid, "segment.LengthDistribution", "bucketSize must be >= 1")
	}
	lengths := make([]histogram.PosType, 0, len(sl.segments))
	for _, s := range sl.segments {
		lengths = append(lengths, histogram.PosType(s.Len()))
	}
	return histogram.NewFromLengths(lengths, bucketSize, maxLength), nil
}
