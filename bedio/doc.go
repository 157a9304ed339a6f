// Package bedio loads BED3 interval tracks (chrom, start, end, whitespace
// delimited, 0-based half-open coordinates) into collection.IntervalCollection
// tracks. A loader delivers an IntervalCollection by providing, per track
// and contig, an iterable of (start, end) pairs in any order, guaranteeing
// integer, non-negative coordinates. Input need not be sorted or
// pre-merged -- segment.SegmentList.Normalize does that once all lines
// are read.
package bedio
