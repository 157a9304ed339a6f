package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/grailbio/gat/simulation"
)

// WriteTSV writes results as tab-separated columns (track, annotation,
// observed, expected, stddev, pvalue, nsamples), one header row followed
// by one row per (track, annotation) pair in sorted order. Columns are
// separated by a single tab, matching the rest of the pack's cmd/ binaries.
func WriteTSV(w io.Writer, results map[string]map[string]*simulation.Result) error {
	tw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(tw, "track\tannotation\tobserved\texpected\tstddev\tpvalue\tnsamples"); err != nil {
		return errors.Wrap(err, "report.WriteTSV: header")
	}
	for _, track := range sortedKeys(results) {
		annotations := results[track]
		for _, ann := range sortedResultKeys(annotations) {
			r := annotations[ann]
			_, err := fmt.Fprintf(tw, "%s\t%s\t%.6g\t%.6g\t%.6g\t%.6g\t%d\n",
				r.Track, r.Annotation, r.Observed, r.Expected, r.Stddev, r.PValue, r.NSamples)
			if err != nil {
				return errors.Wrapf(err, "report.WriteTSV: row %s/%s", track, ann)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "report.WriteTSV: flush")
	}
	return nil
}

// WriteTSVFile creates path (truncating if it exists) and writes results
// to it via WriteTSV.
func WriteTSVFile(path string, results map[string]map[string]*simulation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "report.WriteTSVFile: creating %s", path)
	}
	if err := WriteTSV(f, results); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "report.WriteTSVFile: closing %s", path)
}

func sortedKeys(m map[string]map[string]*simulation.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedResultKeys(m map[string]*simulation.Result) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
