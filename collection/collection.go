// Package collection implements IntervalCollection, the two-level
// track -> contig -> SegmentList mapping that groups a set of BED-like
// tracks for the simulation driver.
package collection

import "github.com/grailbio/gat/segment"

// IntervalCollection maps track name to contig name to *segment.SegmentList.
// Keys are unique within each level; insertion order is irrelevant.
// Read-only lookup (Get) returns an empty SegmentList when the (track,
// contig) pair is absent; Add creates entries on insert.
type IntervalCollection struct {
	// Label identifies the collection's role (e.g. "workspace", "segment",
	// "annotation") for logging; purely descriptive.
	Label string

	tracks map[string]map[string]*segment.SegmentList
}

// New returns an empty IntervalCollection.
func New(label string) *IntervalCollection {
	return &IntervalCollection{
		Label:  label,
		tracks: make(map[string]map[string]*segment.SegmentList),
	}
}

// Add inserts (or replaces) the SegmentList for (track, contig).
func (c *IntervalCollection) Add(track, contig string, list *segment.SegmentList) {
	contigs, ok := c.tracks[track]
	if !ok {
		contigs = make(map[string]*segment.SegmentList)
		c.tracks[track] = contigs
	}
	contigs[contig] = list
}

// Get returns the SegmentList for (track, contig), or an empty normalized
// one if absent. The returned list must not be mutated by read-only
// callers that didn't themselves insert it.
func (c *IntervalCollection) Get(track, contig string) *segment.SegmentList {
	if contigs, ok := c.tracks[track]; ok {
		if list, ok := contigs[contig]; ok {
			return list
		}
	}
	return segment.New()
}

// Tracks returns the collection's track names.
func (c *IntervalCollection) Tracks() []string {
	names := make([]string, 0, len(c.tracks))
	for t := range c.tracks {
		names = append(names, t)
	}
	return names
}

// Contigs returns the contig names present for track, or nil if the track
// is absent.
func (c *IntervalCollection) Contigs(track string) []string {
	contigs, ok := c.tracks[track]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(contigs))
	for name := range contigs {
		names = append(names, name)
	}
	return names
}

// Workspace returns the contig -> SegmentList mapping for track, suitable
// for use as the simulation driver's workspace universe. Returns an
// empty, non-nil map if track is absent.
func (c *IntervalCollection) Workspace(track string) map[string]*segment.SegmentList {
	contigs, ok := c.tracks[track]
	if !ok {
		return map[string]*segment.SegmentList{}
	}
	out := make(map[string]*segment.SegmentList, len(contigs))
	for name, list := range contigs {
		out[name] = list
	}
	return out
}
