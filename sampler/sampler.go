// Package sampler implements SamplerAnnotator, which draws a random
// SegmentList placement inside a workspace that exactly conserves the
// nucleotide mass of segments.Intersect(workspace) and approximately
// conserves their length distribution.
package sampler

import (
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/gat/histogram"
	"github.com/grailbio/gat/rngutil"
	"github.com/grailbio/gat/segment"
)

// Strategy selects which histogram.Sampler construction SamplerAnnotator
// uses to draw segment lengths. Both satisfy the same statistical
// contract; Cumulative is the simpler binary-searched CDF,
// Alias is the O(1)-per-draw Walker alias table.
type Strategy int

const (
	Cumulative Strategy = iota
	Alias
)

// Config controls SamplerAnnotator construction. Zero value selects the
// spec-mandated defaults: BucketSize=1, NBuckets=workspace.Sum() (applied
// lazily per call, since the workspace isn't known at Config-creation
// time), MaxRetries=1000.
type Config struct {
	// BucketSize buckets the length histogram as (length-1)/BucketSize, so
	// bucket b covers lengths (b*BucketSize, (b+1)*BucketSize]. Defaults to 1.
	BucketSize segment.PosType
	// NBuckets bounds the maximum representable length. Defaults to the
	// workspace's total nucleotide mass.
	NBuckets segment.PosType
	// MaxRetries bounds the number of redraws per length draw before
	// giving up with UnsampleableLength. Defaults to 1000.
	MaxRetries int
	// LengthStrategy selects the length-sampling strategy. Defaults to
	// Cumulative.
	LengthStrategy Strategy
}

func (c Config) withDefaults(workspaceSum segment.PosType) Config {
	out := c
	if out.BucketSize < 1 {
		out.BucketSize = 1
	}
	if out.NBuckets < 1 {
		out.NBuckets = workspaceSum
	}
	if out.MaxRetries < 1 {
		out.MaxRetries = 1000
	}
	return out
}

// SamplerAnnotator draws random segment placements constrained to a
// workspace, preserving the nucleotide-count and approximate length
// distribution of the input segments.
type SamplerAnnotator struct {
	cfg Config
}

// New returns a SamplerAnnotator using cfg (zero value for spec defaults).
func New(cfg Config) *SamplerAnnotator {
	return &SamplerAnnotator{cfg: cfg}
}

// Sample draws a random SegmentList placement inside workspace whose
// nucleotide mass equals segments.Intersect(workspace).Sum() exactly.
// Both segments and workspace must be normalized. Returns EmptyWorkspace
// if workspace carries no mass, or UnsampleableLength if a length draw
// cannot be placed within MaxRetries attempts. If the clipped segments
// carry no mass, it returns an empty SegmentList and no error.
func (sa *SamplerAnnotator) Sample(segments, workspace *segment.SegmentList, rng rngutil.RNG) (*segment.SegmentList, error) {
	workspaceSum := workspace.Sum()
	if workspaceSum == 0 {
		return nil, errors.E(errors.Invalid, "sampler.Sample", "EmptyWorkspace: workspace has zero total mass")
	}
	cfg := sa.cfg.withDefaults(workspaceSum)

	clipped, err := segments.Filter(workspace)
	if err != nil {
		return nil, err
	}
	target := clipped.Sum()
	if target == 0 {
		return segment.New(), nil
	}

	hist, err := clipped.LengthDistribution(cfg.BucketSize, cfg.NBuckets)
	if err != nil {
		return nil, err
	}
	if err := hist.Validate(); err != nil {
		return nil, err
	}

	var lengthSampler histogram.Sampler
	switch cfg.LengthStrategy {
	case Alias:
		lengthSampler, err = histogram.NewAlias(hist)
	default:
		lengthSampler, err = histogram.NewCumulative(hist)
	}
	if err != nil {
		return nil, err
	}

	idx := newWorkspaceIndex(workspace)
	placed := &placedSet{}
	remaining := target

	for remaining > 0 {
		length, err := lengthSampler.Sample(rng)
		if err != nil {
			return nil, err
		}
		if length <= 0 {
			break
		}
		if length > remaining {
			length = remaining
		}

		placedOK := false
		for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
			offset := rng.Uniform(0, workspaceSum)
			pos, segEnd := idx.positionAt(offset)
			end := pos + length
			if end > segEnd {
				end = segEnd
			}
			if end <= pos {
				continue
			}
			if placed.overlaps(pos, end) {
				continue
			}
			placed.insert(pos, end)
			remaining -= (end - pos)
			placedOK = true
			break
		}
		if !placedOK {
			log.Debug.Printf("sampler: exhausted %d retries placing length %d (remaining %d/%d)", cfg.MaxRetries, length, remaining, target)
			return nil, errors.E(errors.ResourceExhausted, "sampler.Sample",
				"UnsampleableLength: could not place a segment of length", length, "within", cfg.MaxRetries, "retries")
		}
	}

	result := placed.toSegmentList()
	if result.Sum() != target {
		// Should be unreachable: placedSet only ever accepts disjoint,
		// boundary-truncated candidates, so Normalize can only merge
		// touching segments, never lose mass.
		return nil, errors.E(errors.Fatal, "sampler.Sample", "internal error: conservation invariant violated")
	}
	return result, nil
}
