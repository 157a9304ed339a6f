package segment

import (
	"github.com/grailbio/base/errors"
)

// PosType is this package's coordinate type. int64 is used rather than the
// int32 favored by interval/endpoint_index.go since simulated workspaces
// (whole genomes, not single BED records) can exceed 2^31 bases.
type PosType = int64

// Segment is a half-open interval [Start, End) of non-negative integers.
// The empty segment, Start == End, is permitted at construction but is
// eliminated by Normalize.
type Segment struct {
	Start PosType
	End   PosType
}

// Len returns the segment's length, End - Start.
func (s Segment) Len() PosType { return s.End - s.Start }

// newSegment validates and returns a Segment, or InvalidSegment.
func newSegment(start, end PosType) (Segment, error) {
	if start < 0 {
		return Segment{}, errors.E(errors.Invalid, "segment.newSegment", "negative start coordinate")
	}
	if end < start {
		return Segment{}, errors.E(errors.Invalid, "segment.newSegment", "end before start")
	}
	return Segment{Start: start, End: end}, nil
}
