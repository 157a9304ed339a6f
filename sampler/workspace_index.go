package sampler

import (
	"sort"

	"github.com/grailbio/gat/segment"
)

// workspaceIndex is a prefix-sum index over a normalized workspace
// SegmentList, giving O(log n) position_at(offset): the workspace
// coordinate corresponding to a uniform draw in [0, workspace.Sum()).
// Built once per workspace and shared immutably across sampling
// iterations.
type workspaceIndex struct {
	segs   []segment.Segment
	prefix []int64 // prefix[i] = Σ Len(segs[0..i])
}

func newWorkspaceIndex(workspace *segment.SegmentList) *workspaceIndex {
	segs := workspace.AsSlice()
	prefix := make([]int64, len(segs))
	var running int64
	for i, s := range segs {
		running += int64(s.Len())
		prefix[i] = running
	}
	return &workspaceIndex{segs: segs, prefix: prefix}
}

// sum returns the workspace's total nucleotide mass.
func (w *workspaceIndex) sum() int64 {
	if len(w.prefix) == 0 {
		return 0
	}
	return w.prefix[len(w.prefix)-1]
}

// positionAt maps offset in [0, w.sum()) to the workspace coordinate it
// corresponds to, and returns the End of the workspace segment it falls
// within.
func (w *workspaceIndex) positionAt(offset int64) (pos segment.PosType, segEnd segment.PosType) {
	i := sort.Search(len(w.prefix), func(i int) bool { return w.prefix[i] > offset })
	segEnd = w.segs[i].End
	prevSum := int64(0)
	if i > 0 {
		prevSum = w.prefix[i-1]
	}
	within := offset - prevSum
	pos = w.segs[i].Start + segment.PosType(within)
	return
}
