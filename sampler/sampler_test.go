package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/gat/rngutil"
	"github.com/grailbio/gat/segment"
)

func buildWorkspace(t *testing.T, nsegments int, width segment.PosType) *segment.SegmentList {
	t.Helper()
	sl := segment.New()
	for x := segment.PosType(0); x < segment.PosType(nsegments)*1000; x += 1000 {
		require.NoError(t, sl.Add(x, x+width))
	}
	sl.Normalize()
	return sl
}

func TestSampleConservesMass(t *testing.T) {
	workspace := buildWorkspace(t, 10, 1000)
	segments := segment.New()
	for x := segment.PosType(0); x < 10000; x += 1000 {
		require.NoError(t, segments.Add(x, x+100))
	}
	segments.Normalize()

	sa := New(Config{})
	rng := rngutil.NewSeeded(7)
	for i := 0; i < 200; i++ {
		sample, err := sa.Sample(segments, workspace, rng)
		require.NoError(t, err)
		assert.EqualValues(t, segments.Sum(), sample.Sum())
		assert.True(t, sample.IsNormalized())
	}
}

func TestSampleContainment(t *testing.T) {
	workspace := buildWorkspace(t, 10, 100)
	segments := segment.New()
	for x := segment.PosType(0); x < 10000; x += 1000 {
		require.NoError(t, segments.Add(x, x+10))
	}
	segments.Normalize()

	sa := New(Config{})
	rng := rngutil.NewSeeded(11)
	for i := 0; i < 100; i++ {
		sample, err := sa.Sample(segments, workspace, rng)
		require.NoError(t, err)
		for _, s := range sample.AsSlice() {
			contained := false
			for _, w := range workspace.AsSlice() {
				if s.Start >= w.Start && s.End <= w.End {
					contained = true
					break
				}
			}
			assert.True(t, contained, "segment %v not contained in any workspace segment", s)
		}
	}
}

func TestSampleSNPMassExact(t *testing.T) {
	workspace, err := segment.NewFromPairs([][2]segment.PosType{{0, 1000}}, true)
	require.NoError(t, err)
	segs, err := segment.NewFromPairs([][2]segment.PosType{{0, 1}}, true)
	require.NoError(t, err)

	sa := New(Config{BucketSize: 1, NBuckets: 1000})
	rng := rngutil.NewSeeded(3)
	for i := 0; i < 500; i++ {
		sample, err := sa.Sample(segs, workspace, rng)
		require.NoError(t, err)
		assert.EqualValues(t, 1, sample.Sum())
	}
}

func TestSampleEmptyWorkspace(t *testing.T) {
	workspace := segment.New()
	segs, err := segment.NewFromPairs([][2]segment.PosType{{0, 10}}, true)
	require.NoError(t, err)

	sa := New(Config{})
	rng := rngutil.NewSeeded(1)
	_, err = sa.Sample(segs, workspace, rng)
	assert.Error(t, err)
}

func TestSampleNoOverlapWithWorkspaceYieldsEmpty(t *testing.T) {
	workspace, err := segment.NewFromPairs([][2]segment.PosType{{0, 100}}, true)
	require.NoError(t, err)
	segs, err := segment.NewFromPairs([][2]segment.PosType{{200, 210}}, true)
	require.NoError(t, err)

	sa := New(Config{})
	rng := rngutil.NewSeeded(1)
	sample, err := sa.Sample(segs, workspace, rng)
	require.NoError(t, err)
	assert.True(t, sample.IsEmpty())
}

func TestSampleAliasStrategyConservesMass(t *testing.T) {
	workspace := buildWorkspace(t, 10, 1000)
	segments := segment.New()
	for x := segment.PosType(0); x < 10000; x += 1000 {
		require.NoError(t, segments.Add(x, x+100))
	}
	segments.Normalize()

	sa := New(Config{LengthStrategy: Alias})
	rng := rngutil.NewSeeded(13)
	for i := 0; i < 200; i++ {
		sample, err := sa.Sample(segments, workspace, rng)
		require.NoError(t, err)
		assert.EqualValues(t, segments.Sum(), sample.Sum())
	}
}

func TestPositionSamplingDensity(t *testing.T) {
	workspace := buildWorkspace(t, 10, 100)
	segments := buildWorkspace(t, 10, 10)

	sa := New(Config{})
	rng := rngutil.NewSeeded(99)
	counts := make(map[segment.PosType]int)
	const ntests = 400
	for i := 0; i < ntests; i++ {
		sample, err := sa.Sample(segments, workspace, rng)
		require.NoError(t, err)
		for _, s := range sample.AsSlice() {
			for p := s.Start; p < s.End; p++ {
				counts[p]++
			}
		}
	}
	var total, n int
	for _, w := range workspace.AsSlice() {
		for p := w.Start; p < w.End; p++ {
			total += counts[p]
			n++
		}
	}
	mean := float64(total) / float64(n)
	want := float64(ntests) * float64(segments.Sum()) / float64(workspace.Sum())
	assert.InDelta(t, want, mean, want*0.5+0.5)
}
