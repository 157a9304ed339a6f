// Package report writes simulation.Result records as TSV, the result
// sink: {track, annotation, observed, expected, stddev,
// pvalue, nsamples}.
package report
