// Package histogram implements the empirical segment-length distribution
// used by the sampler package's null model, and two interchangeable
// strategies for drawing a length from it: a binary-searched cumulative
// distribution, and a Walker alias table.
package histogram
