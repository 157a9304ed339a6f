package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenSmallSegments returns {(x, x+10) : x in 0,100,...,900}, normalized.
func tenSmallSegments(t *testing.T) *SegmentList {
	t.Helper()
	sl := New()
	for x := PosType(0); x < 1000; x += 100 {
		require.NoError(t, sl.Add(x, x+10))
	}
	sl.Normalize()
	return sl
}

func TestOverlapWithRange(t *testing.T) {
	a := tenSmallSegments(t)

	full, err := a.OverlapWithRange(0, 1000)
	require.NoError(t, err)
	assert.EqualValues(t, a.Sum(), full)

	half, err := a.OverlapWithRange(0, 500)
	require.NoError(t, err)
	assert.EqualValues(t, a.Sum()/2, half)

	tail, err := a.OverlapWithRange(900, 910)
	require.NoError(t, err)
	assert.EqualValues(t, 10, tail)

	partial, err := a.OverlapWithRange(905, 915)
	require.NoError(t, err)
	assert.EqualValues(t, 5, partial)

	none, err := a.OverlapWithRange(1000, 2000)
	require.NoError(t, err)
	assert.EqualValues(t, 0, none)
}

func TestOverlapWithRangeAgreesWithIntersect(t *testing.T) {
	a := tenSmallSegments(t)
	for _, rng := range [][2]PosType{{0, 500}, {900, 910}, {905, 915}, {1000, 2000}} {
		want, err := a.OverlapWithRange(rng[0], rng[1])
		require.NoError(t, err)

		other, err := NewFromPairs([][2]PosType{rng}, true)
		require.NoError(t, err)
		inter, err := a.Intersect(other)
		require.NoError(t, err)
		assert.EqualValues(t, want, inter.Sum())
	}
}

func TestIntersectionFull(t *testing.T) {
	a := tenSmallSegments(t)
	b, err := NewFromPairs([][2]PosType{{0, 1000}}, true)
	require.NoError(t, err)
	r, err := b.Intersect(a)
	require.NoError(t, err)
	assert.Equal(t, a.AsSlice(), r.AsSlice())
}

func TestIntersectionSelf(t *testing.T) {
	a := tenSmallSegments(t)
	r, err := a.Intersect(a)
	require.NoError(t, err)
	assert.Equal(t, a.AsSlice(), r.AsSlice())
}

func TestIntersectionCommutative(t *testing.T) {
	a := tenSmallSegments(t)
	b, err := NewFromPairs(rangePairs(5, 1000, 100), true)
	require.NoError(t, err)
	ab, err := a.Intersect(b)
	require.NoError(t, err)
	ba, err := b.Intersect(a)
	require.NoError(t, err)
	assert.Equal(t, ab.AsSlice(), ba.AsSlice())
}

func TestNoIntersection(t *testing.T) {
	a := tenSmallSegments(t)
	b, err := NewFromPairs(rangePairs(10, 1000, 100), true)
	require.NoError(t, err)
	r, err := b.Intersect(a)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())
	assert.Empty(t, r.AsSlice())
}

func TestPartialIntersection(t *testing.T) {
	a := tenSmallSegments(t)
	b, err := NewFromPairs(rangePairs(5, 1000, 100), true)
	require.NoError(t, err)
	r, err := b.Intersect(a)
	require.NoError(t, err)
	assert.Equal(t, a.Len(), r.Len())
	assert.EqualValues(t, a.Sum()/2, r.Sum())
}

func TestIntersectionWithSegments(t *testing.T) {
	a := tenSmallSegments(t)

	b, err := NewFromPairs(rangePairs(5, 1000, 100), true)
	require.NoError(t, err)
	n, err := a.IntersectionWithSegments(b)
	require.NoError(t, err)
	assert.Equal(t, b.Len(), n)
	n, err = b.IntersectionWithSegments(a)
	require.NoError(t, err)
	assert.Equal(t, b.Len(), n)

	b, err = NewFromPairs(rangePairs(10, 1000, 100), true)
	require.NoError(t, err)
	n, err = a.IntersectionWithSegments(b)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Two genuinely disjoint (non-touching) sub-segments per a-segment, so
	// Normalize doesn't merge them back together -- this is what exercises
	// the single-self-segment-overlaps-two-other-segments overcounting case.
	var doubled [][2]PosType
	for x := PosType(0); x < 1000; x += 100 {
		doubled = append(doubled, [2]PosType{x, x + 4})
	}
	for x := PosType(0); x < 1000; x += 100 {
		doubled = append(doubled, [2]PosType{x + 6, x + 10})
	}
	b, err = NewFromPairs(doubled, true)
	require.NoError(t, err)
	n, err = a.IntersectionWithSegments(b)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	n, err = b.IntersectionWithSegments(a)
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}

func TestNotNormalizedError(t *testing.T) {
	a := New()
	require.NoError(t, a.Add(5, 10))
	require.NoError(t, a.Add(0, 3)) // out of order => not normalized

	_, err := a.OverlapWithRange(0, 100)
	assert.Error(t, err)

	b := New()
	_, err = a.Intersect(b)
	assert.Error(t, err)
}

func TestLengthDistribution(t *testing.T) {
	a := tenSmallSegments(t)
	h, err := a.LengthDistribution(1, 100)
	require.NoError(t, err)
	mean, err := h.Mean()
	require.NoError(t, err)
	assert.InDelta(t, 10, mean, 1e-9)
	assert.EqualValues(t, 10, h.Total())
}
