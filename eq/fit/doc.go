// Package fit searches for small sets of parametric peaking bands whose
// combined response cancels a correction curve's deviation from flat.
//
// Three allocation strategies share one inner primitive, a bounded
// binary-search-like refinement of a single band parameter: FitAuto places
// bands at the worst remaining deviation, FitPerPoint derives one band per
// curve control point, and FitConstantBandwidth fills a fixed logarithmic
// grid the way hardware equalizers do. Every candidate is scored by
// measuring its actual filter response and mixing it into the residual.
// The search is a local hill-climb with bounded cost; it makes no global
// optimality claim.
package fit
