package sampler

import (
	"sort"

	"github.com/grailbio/gat/segment"
)

// placedSet tracks the segments placed so far within one sample, kept
// sorted by Start so overlap with a candidate placement can be rejected
// in O(log n + k). Segments are disjoint by construction (overlapping
// candidates are rejected by the caller before insertion), so placedSet
// never needs to merge on insert; the final SegmentList.Normalize call
// only has to merge touching segments, not overlapping ones.
type placedSet struct {
	segs []segment.Segment
}

// overlaps reports whether [start, end) intersects any already-placed
// segment.
func (p *placedSet) overlaps(start, end segment.PosType) bool {
	idx := sort.Search(len(p.segs), func(i int) bool { return p.segs[i].End > start })
	return idx < len(p.segs) && p.segs[idx].Start < end
}

// insert records [start, end) as placed. The caller must have already
// confirmed !overlaps(start, end).
func (p *placedSet) insert(start, end segment.PosType) {
	idx := sort.Search(len(p.segs), func(i int) bool { return p.segs[i].Start >= start })
	p.segs = append(p.segs, segment.Segment{})
	copy(p.segs[idx+1:], p.segs[idx:])
	p.segs[idx] = segment.Segment{Start: start, End: end}
}

// toSegmentList returns the placed segments as a SegmentList. Since
// placedSet only ever holds pairwise-disjoint segments, the only work
// Normalize has left to do is merge touching segments.
func (p *placedSet) toSegmentList() *segment.SegmentList {
	pairs := make([][2]segment.PosType, len(p.segs))
	for i, s := range p.segs {
		pairs[i] = [2]segment.PosType{s.Start, s.End}
	}
	sl, _ := segment.NewFromPairs(pairs, true)
	return sl
}
