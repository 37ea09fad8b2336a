// Package stats holds the pure statistics routines behind the distribution
// checks: categorical value counts, key alignment of count vectors, and the
// Kullback-Leibler divergence.
//
// KLDivergence mirrors the relative-entropy convention used by common
// scientific libraries: inputs are raw counts that are normalized
// internally, terms with p_i = 0 contribute nothing, and any term with
// p_i > 0 and q_i = 0 makes the divergence +Inf.
package stats
