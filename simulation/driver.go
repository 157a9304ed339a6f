// Package simulation implements the Monte-Carlo driver: for each
// (segment-track, annotation-track) pair it computes the observed
// overlap statistic and the empirical null distribution of that statistic
// under repeated SamplerAnnotator resampling.
package simulation

import (
	"sort"
	"sync"

	"github.com/grailbio/base/log"
	"github.com/grailbio/gat/collection"
	"github.com/grailbio/gat/counter"
	"github.com/grailbio/gat/rngutil"
	"github.com/grailbio/gat/sampler"
	"github.com/grailbio/gat/segment"
	"github.com/grailbio/gat/stats"
)

// Result is the per-(track,annotation) summary: observed
// statistic, its mean and stddev under the null, and the two-sided
// empirical p-value. Samples is populated only when Config.RetainSamples
// is set.
type Result struct {
	Track      string
	Annotation string
	Observed   float64
	Expected   float64
	Stddev     float64
	PValue     float64
	NSamples   int
	Samples    []float64
}

// Config controls a Driver's concurrency and reproducibility. The zero
// value runs sequentially with a fixed seed of 0.
type Config struct {
	// Workers bounds how many goroutines fan out the N sampling
	// iterations. 0 or 1 means sequential.
	Workers int
	// Seed is the base RNG seed; iteration i derives seed = Seed XOR i
	// (rngutil.WorkerSeed with worker 0) whichever goroutine runs it, so
	// every iteration gets its own stream and results are reproducible
	// regardless of Workers.
	Seed int64
	// RetainSamples, if true, keeps the full per-iteration sample vector
	// on each Result.
	RetainSamples bool
}

// Driver orchestrates repeated sampling across segment tracks and
// annotation tracks.
type Driver struct {
	cfg Config
}

// New returns a Driver configured per cfg.
func New(cfg Config) *Driver {
	return &Driver{cfg: cfg}
}

// Run evaluates every (segment-track, annotation-track) pair: the
// observed statistic over segments[T] ∩ workspace vs. annotations[A] ∩
// workspace, and N samples of cnt(sa.Sample(segments[T], workspace),
// annotations[A] ∩ workspace). workspace maps contig name to the
// universe SegmentList for that contig; segments and annotations may
// cover any subset of workspace's contigs. Returns results keyed by
// [track][annotation].
func (d *Driver) Run(
	segments, annotations *collection.IntervalCollection,
	workspace map[string]*segment.SegmentList,
	sa *sampler.SamplerAnnotator,
	cnt counter.Counter,
	n int,
) (map[string]map[string]*Result, error) {
	contigs := sortedKeys(workspace)
	annTracks := sortedStrings(annotations.Tracks())
	segTracks := sortedStrings(segments.Tracks())

	// Precompute, per contig, each annotation track clipped to the
	// workspace -- shared immutably across all segment tracks and all
	// iterations.
	clippedAnn := make(map[string]map[string]*segment.SegmentList, len(annTracks)) // [annotation][contig]
	for _, a := range annTracks {
		perContig := make(map[string]*segment.SegmentList, len(contigs))
		for _, c := range contigs {
			clipped, err := annotations.Get(a, c).Filter(workspace[c])
			if err != nil {
				return nil, err
			}
			perContig[c] = clipped
		}
		clippedAnn[a] = perContig
	}

	out := make(map[string]map[string]*Result, len(segTracks))
	for _, track := range segTracks {
		log.Debug.Printf("simulation: running track %s over %d contig(s), %d annotation(s), %d samples", track, len(contigs), len(annTracks), n)

		segByContig := make(map[string]*segment.SegmentList, len(contigs))
		for _, c := range contigs {
			segByContig[c] = segments.Get(track, c)
		}

		observed := make(map[string]float64, len(annTracks))
		for _, a := range annTracks {
			var total float64
			for _, c := range contigs {
				clippedSeg, err := segByContig[c].Filter(workspace[c])
				if err != nil {
					return nil, err
				}
				v, err := cnt(clippedSeg, clippedAnn[a][c])
				if err != nil {
					return nil, err
				}
				total += v
			}
			observed[a] = total
		}

		samples, err := d.sampleIterations(segByContig, workspace, contigs, clippedAnn, annTracks, sa, cnt, n)
		if err != nil {
			return nil, err
		}

		trackResults := make(map[string]*Result, len(annTracks))
		for _, a := range annTracks {
			trackResults[a] = &Result{
				Track:      track,
				Annotation: a,
				Observed:   observed[a],
				Expected:   stats.Mean(samples[a]),
				Stddev:     stats.Stddev(samples[a]),
				PValue:     stats.TwoSidedEmpiricalPValue(samples[a], observed[a]),
				NSamples:   n,
				Samples:    retain(samples[a], d.cfg.RetainSamples),
			}
		}
		out[track] = trackResults
	}
	return out, nil
}

// sampleIterations runs n independent sampling iterations, each drawing
// one sample SegmentList per contig and evaluating cnt against every
// annotation track, summing across contigs. Iterations are independent
// and may be fanned out across d.cfg.Workers goroutines with
// deterministic per-iteration RNG seeding.
func (d *Driver) sampleIterations(
	segByContig map[string]*segment.SegmentList,
	workspace map[string]*segment.SegmentList,
	contigs []string,
	clippedAnn map[string]map[string]*segment.SegmentList,
	annTracks []string,
	sa *sampler.SamplerAnnotator,
	cnt counter.Counter,
	n int,
) (map[string][]float64, error) {
	samples := make(map[string][]float64, len(annTracks))
	for _, a := range annTracks {
		samples[a] = make([]float64, n)
	}

	workers := d.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	runOne := func(rng rngutil.RNG, i int) error {
		for _, c := range contigs {
			s, err := sa.Sample(segByContig[c], workspace[c], rng)
			if err != nil {
				return err
			}
			for _, a := range annTracks {
				v, err := cnt(s, clippedAnn[a][c])
				if err != nil {
					return err
				}
				samples[a][i] += v
			}
		}
		return nil
	}

	if workers == 1 {
		for i := 0; i < n; i++ {
			rng := rngutil.NewSeeded(rngutil.WorkerSeed(d.cfg.Seed, 0, i))
			if err := runOne(rng, i); err != nil {
				return nil, err
			}
		}
		return samples, nil
	}

	// Iterations are assigned to workers by a fixed i%workers partition
	// rather than a work-stealing queue, so that each iteration's seed is
	// independent of goroutine scheduling and reruns are reproducible
	// regardless of how the runtime interleaves the workers.
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for i := workerID; i < n; i += workers {
				rng := rngutil.NewSeeded(rngutil.WorkerSeed(d.cfg.Seed, 0, i))
				if err := runOne(rng, i); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}(w)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return samples, nil
}

func sortedKeys(m map[string]*segment.SegmentList) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	sort.Strings(out)
	return out
}

func retain(samples []float64, keep bool) []float64 {
	if !keep {
		return nil
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}
