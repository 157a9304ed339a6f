package histogram

import (
	"sort"

	"github.com/grailbio/gat/rngutil"
)

// Sampler draws a positive length from a fixed distribution. Two
// constructions are provided below -- NewCumulative and NewAlias -- both
// satisfying the same statistical contract: E[Sample()] approximates the
// histogram's Mean(), and a single-valued histogram samples that value
// deterministically (stddev zero).
type Sampler interface {
	// Sample draws one length using rng. Within a bucket spanning more than
	// one length (BucketSize > 1), the result is jittered uniformly within
	// the bucket.
	Sample(rng rngutil.RNG) (PosType, error)
}

// cumulativeSampler draws by inverting the CDF: a uniform draw in
// [0,total) is binary-searched against prefix sums of bucket counts,
// O(log n) per draw over a prefix-sum table built once at construction.
type cumulativeSampler struct {
	bucketSize PosType
	prefix     []int64 // prefix[i] = Σ counts[0..i]
	total      int64
}

// NewCumulative builds a Sampler that inverts the cumulative distribution.
// Returns DegenerateHistogram if h carries no mass.
func NewCumulative(h *LengthHistogram) (Sampler, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	prefix := make([]int64, len(h.counts))
	var running int64
	for i, c := range h.counts {
		running += c
		prefix[i] = running
	}
	return &cumulativeSampler{bucketSize: h.BucketSize, prefix: prefix, total: running}, nil
}

func (s *cumulativeSampler) Sample(rng rngutil.RNG) (PosType, error) {
	u := rng.Uniform(0, s.total)
	b := sort.Search(len(s.prefix), func(i int) bool { return s.prefix[i] > u })
	return drawFromBucket(b, s.bucketSize, rng), nil
}

// aliasSampler is a Walker alias table: O(1) amortized draws regardless
// of the number of buckets, trading a one-time O(n) construction for
// constant-time sampling.
type aliasSampler struct {
	bucketSize PosType
	prob       []float64 // per-bucket acceptance probability, in [0,1]
	alias      []int     // per-bucket alias bucket index
}

// NewAlias builds a Sampler using the alias method (Vose's algorithm).
// Returns DegenerateHistogram if h carries no mass.
func NewAlias(h *LengthHistogram) (Sampler, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	n := len(h.counts)
	prob := make([]float64, n)
	alias := make([]int, n)
	scaled := make([]float64, n)
	total := float64(h.total)
	for i, c := range h.counts {
		scaled[i] = float64(c) * float64(n) / total
	}

	small := make([]int, 0, n)
	large := make([]int, 0, n)
	for i, p := range scaled {
		if p < 1.0 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	for len(small) > 0 && len(large) > 0 {
		s := small[len(small)-1]
		small = small[:len(small)-1]
		l := large[len(large)-1]
		large = large[:len(large)-1]

		prob[s] = scaled[s]
		alias[s] = l
		scaled[l] = scaled[l] + scaled[s] - 1.0
		if scaled[l] < 1.0 {
			small = append(small, l)
		} else {
			large = append(large, l)
		}
	}
	for _, l := range large {
		prob[l] = 1.0
	}
	for _, s := range small {
		prob[s] = 1.0
	}

	return &aliasSampler{bucketSize: h.BucketSize, prob: prob, alias: alias}, nil
}

func (s *aliasSampler) Sample(rng rngutil.RNG) (PosType, error) {
	n := len(s.prob)
	b := int(rng.Uniform(0, int64(n)))
	// Reuse the RNG's integer stream (scaled into [0, 1<<32)) as a uniform
	// coin flip against prob[b], rather than requiring a separate
	// float-uniform method on the RNG interface.
	coin := float64(rng.Uniform(0, 1<<32)) / float64(int64(1)<<32)
	if coin >= s.prob[b] {
		b = s.alias[b]
	}
	return drawFromBucket(b, s.bucketSize, rng), nil
}

func drawFromBucket(bucket int, bucketSize PosType, rng rngutil.RNG) PosType {
	base := PosType(bucket)*bucketSize + 1
	if bucketSize <= 1 {
		return base
	}
	jitter := rng.Uniform(0, bucketSize)
	return base + jitter
}
