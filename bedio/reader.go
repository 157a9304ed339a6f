package bedio

import (
	"bufio"
	"context"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/gat/collection"
	"github.com/grailbio/gat/segment"
)

// getTokens extracts up to len(tokens) whitespace-delimited fields from
// curLine into tokens, returning how many were found. Any run of bytes
// <= ' ' is a delimiter. Carried over from interval/bedunion.go's
// getTokens unchanged -- BED3 field-splitting has no BAM/BED-specific
// assumptions baked into it, so the byte-scanning loop itself needed no
// adaptation; only its caller (ReadTrack, below) differs from
// scanBEDUnion's sorted-input/streaming-merge assumption.
func getTokens(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ReadTrack parses a BED3 file at path into a contig -> SegmentList map,
// normalizing each contig's list before returning. Lines with fewer than 3
// whitespace-delimited fields are skipped if blank, otherwise rejected.
// Gzip-compressed input is detected from the path's extension.
func ReadTrack(ctx context.Context, path string) (map[string]*segment.SegmentList, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "bedio.ReadTrack", path)
	}
	defer func() {
		if cerr := f.Close(ctx); cerr != nil {
			log.Printf("bedio: closing %s: %v", path, cerr)
		}
	}()

	reader := f.Reader(ctx)
	var scanner *bufio.Scanner
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, errors.E(err, "bedio.ReadTrack", path)
		}
		defer gz.Close()
		scanner = bufio.NewScanner(gz)
	default:
		scanner = bufio.NewScanner(reader)
	}

	builders := make(map[string]*segment.SegmentList)
	var tokens [3][]byte
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		n := getTokens(tokens[:], curLine)
		if n == 0 {
			continue
		}
		if n != 3 {
			return nil, errors.E(errors.Invalid, "bedio.ReadTrack",
				"file", path, "line", lineIdx, "fewer than 3 fields")
		}
		start, err := strconv.Atoi(gunsafe.BytesToString(tokens[1]))
		if err != nil {
			return nil, errors.E(err, errors.Invalid, "bedio.ReadTrack", "file", path, "line", lineIdx)
		}
		end, err := strconv.Atoi(gunsafe.BytesToString(tokens[2]))
		if err != nil {
			return nil, errors.E(err, errors.Invalid, "bedio.ReadTrack", "file", path, "line", lineIdx)
		}
		if start < 0 || end < start {
			return nil, errors.E(errors.Invalid, "bedio.ReadTrack",
				"file", path, "line", lineIdx, "negative or inverted coordinates")
		}
		contig := string(tokens[0])
		sl, ok := builders[contig]
		if !ok {
			sl = segment.New()
			builders[contig] = sl
		}
		if err := sl.Add(segment.PosType(start), segment.PosType(end)); err != nil {
			return nil, errors.E(err, "bedio.ReadTrack", "file", path, "line", lineIdx)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "bedio.ReadTrack", path)
	}

	var totBases segment.PosType
	for _, sl := range builders {
		sl.Normalize()
		totBases += sl.Sum()
	}
	log.Debug.Printf("bedio: loaded %s, %d contig(s), %d base(s)", path, len(builders), totBases)
	return builders, nil
}

// LoadTrack reads path via ReadTrack and adds every contig it contains to
// coll under track.
func LoadTrack(ctx context.Context, coll *collection.IntervalCollection, track, path string) error {
	byContig, err := ReadTrack(ctx, path)
	if err != nil {
		return err
	}
	for contig, sl := range byContig {
		coll.Add(track, contig, sl)
	}
	return nil
}

// LoadWorkspace reads path via ReadTrack and returns its contig map
// directly, suitable for use as a simulation.Driver workspace universe.
func LoadWorkspace(ctx context.Context, path string) (map[string]*segment.SegmentList, error) {
	return ReadTrack(ctx, path)
}
