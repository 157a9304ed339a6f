package main

/*
gat-sim estimates enrichment or depletion of one or more annotation
tracks against one or more segment tracks, within a workspace, via
Monte-Carlo resampling that preserves nucleotide count and the empirical
segment-length distribution.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/gat/bedio"
	"github.com/grailbio/gat/collection"
	"github.com/grailbio/gat/counter"
	"github.com/grailbio/gat/report"
	"github.com/grailbio/gat/sampler"
	"github.com/grailbio/gat/segment"
	"github.com/grailbio/gat/simulation"
)

var (
	workspacePath = flag.String("workspace", "", "Workspace BED3 path (required)")
	segmentPaths  = flag.String("segments", "", "Comma-separated list of track=path BED3 segment tracks (required)")
	annotationPaths = flag.String("annotations", "", "Comma-separated list of track=path BED3 annotation tracks (required)")
	nsamples      = flag.Int("num-samples", 1000, "Number of Monte-Carlo samples per (segment-track, annotation-track) pair")
	seed          = flag.Int64("seed", 0, "Base RNG seed")
	workers       = flag.Int("parallelism", 0, "Number of worker goroutines for sampling; 0 or 1 runs sequentially")
	strategy      = flag.String("length-strategy", "cumulative", "Length-sampling strategy: 'cumulative' or 'alias'")
	bucketSize    = flag.Int64("bucket-size", 1, "Length-histogram bucket size")
	retainSamples = flag.Bool("retain-samples", false, "Keep the full per-iteration null-distribution sample vector on each in-memory result (the TSV output does not include it)")
	out           = flag.String("out", "gat-sim.tsv", "Output TSV path")
)

func gatSimUsage() {
	fmt.Printf("Usage: %s -workspace workspace.bed -segments track=segments.bed -annotations track=annotations.bed [OPTIONS]\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

// parseTrackList parses a "track1=path1,track2=path2" flag value.
func parseTrackList(spec string) (map[string]string, error) {
	out := make(map[string]string)
	if spec == "" {
		return out, nil
	}
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("gat-sim: malformed track entry %q, want track=path", entry)
		}
		out[parts[0]] = parts[1]
	}
	return out, nil
}

func main() {
	flag.Usage = gatSimUsage
	shutdown := grail.Init()
	defer shutdown()

	if *workspacePath == "" || *segmentPaths == "" || *annotationPaths == "" {
		log.Fatalf("-workspace, -segments, and -annotations are all required")
	}

	ctx := vcontext.Background()

	workspace, err := bedio.LoadWorkspace(ctx, *workspacePath)
	if err != nil {
		log.Panicf("%v", err)
	}

	segTracks, err := parseTrackList(*segmentPaths)
	if err != nil {
		log.Panicf("%v", err)
	}
	annTracks, err := parseTrackList(*annotationPaths)
	if err != nil {
		log.Panicf("%v", err)
	}

	segments := collection.New("segment")
	for track, path := range segTracks {
		if err := bedio.LoadTrack(ctx, segments, track, path); err != nil {
			log.Panicf("%v", err)
		}
	}
	annotations := collection.New("annotation")
	for track, path := range annTracks {
		if err := bedio.LoadTrack(ctx, annotations, track, path); err != nil {
			log.Panicf("%v", err)
		}
	}

	var lengthStrategy sampler.Strategy
	switch *strategy {
	case "cumulative":
		lengthStrategy = sampler.Cumulative
	case "alias":
		lengthStrategy = sampler.Alias
	default:
		log.Fatalf("unknown -length-strategy %q", *strategy)
	}

	sa := sampler.New(sampler.Config{
		BucketSize:     segment.PosType(*bucketSize),
		LengthStrategy: lengthStrategy,
	})

	driver := simulation.New(simulation.Config{
		Workers:       *workers,
		Seed:          *seed,
		RetainSamples: *retainSamples,
	})

	log.Printf("gat-sim: running %d segment track(s) x %d annotation track(s), %d samples each", len(segTracks), len(annTracks), *nsamples)
	results, err := driver.Run(segments, annotations, workspace, sa, counter.NucleotideOverlap, *nsamples)
	if err != nil {
		log.Panicf("%v", err)
	}

	if err := report.WriteTSVFile(*out, results); err != nil {
		log.Panicf("%v", err)
	}
	log.Debug.Printf("exiting")
}
