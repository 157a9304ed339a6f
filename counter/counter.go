// Package counter implements the pluggable overlap statistics the
// simulation driver evaluates between a (sample or observed) SegmentList
// and an annotation SegmentList.
package counter

import "github.com/grailbio/gat/segment"

// Counter computes a statistic from a sample and an annotation, both
// already restricted to the workspace. Any function with this signature
// conforms.
type Counter func(sample, annotation *segment.SegmentList) (float64, error)

// NucleotideOverlap returns sample.Intersect(annotation).Sum(), the
// number of overlapping bases. Pure, stateless, O(m+n).
func NucleotideOverlap(sample, annotation *segment.SegmentList) (float64, error) {
	r, err := sample.Intersect(annotation)
	if err != nil {
		return 0, err
	}
	return float64(r.Sum()), nil
}

// SegmentOverlap returns the number of sample segments that overlap at
// least one annotation segment, via SegmentList.IntersectionWithSegments.
func SegmentOverlap(sample, annotation *segment.SegmentList) (float64, error) {
	n, err := sample.IntersectionWithSegments(annotation)
	if err != nil {
		return 0, err
	}
	return float64(n), nil
}

// Jaccard returns |sample ∩ annotation| / |sample ∪ annotation| in
// nucleotides. Returns 0 when both lists are empty.
func Jaccard(sample, annotation *segment.SegmentList) (float64, error) {
	inter, err := sample.Intersect(annotation)
	if err != nil {
		return 0, err
	}
	interSum := inter.Sum()
	union := sample.Sum() + annotation.Sum() - interSum
	if union == 0 {
		return 0, nil
	}
	return float64(interSum) / float64(union), nil
}
