package histogram

import "github.com/grailbio/base/errors"

// PosType mirrors segment.PosType without introducing a dependency on the
// segment package; histogram only ever deals in lengths and counts.
type PosType = int64

// LengthHistogram is a bucketed empirical distribution of segment lengths.
// Bucket b holds the count of segments whose length fell in
// (b*BucketSize, (b+1)*BucketSize], so bucket 0 holds lengths 1 through
// BucketSize. Lengths <= 0 are not recorded.
type LengthHistogram struct {
	BucketSize PosType
	counts     []int64 // indexed by bucket
	total      int64   // Σ counts
	totalMass  int64   // Σ length*count, for the mean
}

// New returns an empty LengthHistogram with nbuckets buckets, each
// covering bucketSize lengths. bucketSize must be >= 1.
func New(bucketSize PosType, nbuckets int) *LengthHistogram {
	if bucketSize < 1 {
		bucketSize = 1
	}
	if nbuckets < 1 {
		nbuckets = 1
	}
	return &LengthHistogram{
		BucketSize: bucketSize,
		counts:     make([]int64, nbuckets),
	}
}

// NewFromLengths tallies lengths into a LengthHistogram with the given
// bucket size; maxLength bounds the highest length the histogram can
// represent (lengths above it are clipped into the final bucket).
func NewFromLengths(lengths []PosType, bucketSize PosType, maxLength PosType) *LengthHistogram {
	nbuckets := int((maxLength+bucketSize-1)/bucketSize) + 1
	h := New(bucketSize, nbuckets)
	for _, l := range lengths {
		h.Add(l)
	}
	return h
}

// Add records one more observation of the given length. Bucket b covers
// lengths (b*BucketSize, (b+1)*BucketSize], so that drawFromBucket's
// inverse mapping (bucket*BucketSize+1 + jitter in [0,BucketSize)) is
// exact.
func (h *LengthHistogram) Add(length PosType) {
	if length <= 0 {
		return
	}
	b := int((length - 1) / h.BucketSize)
	if b >= len(h.counts) {
		b = len(h.counts) - 1
	}
	h.counts[b]++
	h.total++
	h.totalMass += int64(length)
}

// Buckets returns the raw bucket counts. Callers must not mutate the
// returned slice.
func (h *LengthHistogram) Buckets() []int64 { return h.counts }

// Total returns Σ counts.
func (h *LengthHistogram) Total() int64 { return h.total }

// Mean returns Σ(length*count)/Σ(count), the empirical mean length.
// DegenerateHistogram if Total() == 0.
func (h *LengthHistogram) Mean() (float64, error) {
	if h.total == 0 {
		return 0, errors.E(errors.Invalid, "histogram.Mean", "DegenerateHistogram: zero total count")
	}
	return float64(h.totalMass) / float64(h.total), nil
}

// Validate returns DegenerateHistogram if the histogram carries no mass,
// which makes it unusable for sampler construction.
func (h *LengthHistogram) Validate() error {
	if h.total == 0 {
		return errors.E(errors.Invalid, "histogram.Validate", "DegenerateHistogram: histogram has zero total count")
	}
	return nil
}
