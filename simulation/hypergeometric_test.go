package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/gat/collection"
	"github.com/grailbio/gat/counter"
	"github.com/grailbio/gat/sampler"
	"github.com/grailbio/gat/segment"
)

// hypergeometricMeanVar returns the mean and variance of the number of
// "successes" (annotation bases) drawn when placing a draws-many single
// base positions without replacement from a universe of size total
// containing m success positions. This models the SNP case of
// _examples/original_source/test/test_gat.py: TestSNPSampling, where a
// single-base segment placed uniformly at random in the workspace either
// lands on an annotated base or doesn't, and repeated placement is
// equivalent to a hypergeometric draw.
func hypergeometricMeanVar(total, m, draws int64) (mean, variance float64) {
	n := float64(total)
	k := float64(m)
	d := float64(draws)
	mean = d * k / n
	variance = d * k * (n - k) * (n - d) / (n * n * (n - 1))
	return mean, variance
}

// TestSNPSamplingMatchesHypergeometric reproduces test_gat.py's
// TestSNPSampling: a single-base ("SNP") segment track sampled against
// a contiguous annotation of size y within a size-1000 workspace. The
// Monte-Carlo expected overlap should track the closed-form hypergeometric
// mean for a single draw without replacement; the closed-form variance
// only sets the tolerance.
func TestSNPSamplingMatchesHypergeometric(t *testing.T) {
	const workspaceSize segment.PosType = 1000
	const nsamples = 500

	workspace := map[string]*segment.SegmentList{
		"chr1": mustList(t, [][2]segment.PosType{{0, workspaceSize}}),
	}
	segs := collection.New("segment")
	segs.Add("snp", "chr1", mustList(t, [][2]segment.PosType{{0, 1}}))

	sa := sampler.New(sampler.Config{})

	for y := int64(1); y < 100; y += 10 {
		anns := collection.New("annotation")
		anns.Add("y", "chr1", mustList(t, [][2]segment.PosType{{0, segment.PosType(y)}}))

		d := New(Config{Seed: int64(y)})
		results, err := d.Run(segs, anns, workspace, sa, counter.NucleotideOverlap, nsamples)
		require.NoError(t, err)

		r := results["snp"]["y"]
		wantMean, wantVar := hypergeometricMeanVar(int64(workspaceSize), y, 1)
		wantStddev := math.Sqrt(wantVar)

		// Monte-Carlo estimate over nsamples draws; allow for sampling
		// noise proportional to the standard error of the mean.
		standardErr := wantStddev / math.Sqrt(float64(nsamples))
		tol := 6*standardErr + 0.01
		assert.InDeltaf(t, wantMean, r.Expected, tol, "y=%d: expected %.4f want %.4f", y, r.Expected, wantMean)
	}
}
