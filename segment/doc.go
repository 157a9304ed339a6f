/*Package segment implements interval-union operations on half-open integer
  intervals over a single coordinate axis, in a manner optimized for the
  Monte-Carlo resampling used by the gat genomic-association simulator.

  A Segment is the pair [Start, End). A SegmentList is an ordered sequence of
  Segments that, once Normalize'd, is sorted, pairwise disjoint, and
  non-adjacent (touching segments are merged). Most set-algebraic operations
  require both operands to already be normalized.
*/
package segment
