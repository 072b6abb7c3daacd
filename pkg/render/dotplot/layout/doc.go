// Package layout computes dot-plot positions: which row every point sits
// on and how far it is nudged off that row so near-coincident markers stay
// visible.
//
// # Overlap Offsets
//
// Within one row each source contributes one value. [Groups] clusters
// values that lie within Options.Tolerance of an anchor: anchors are visited
// in alphabetical source order and each unassigned anchor absorbs every
// later unassigned source whose value is close to the anchor's own value.
// Membership is decided against the anchor only, so two members of a group
// may be further apart than the tolerance. Missing values never join a
// group.
//
// [Offsets] spreads each group of k > 1 symmetrically around the row:
//
//	k = 2:  -0.5, +0.5      (times BaseUnit)
//	k = 3:  -1, 0, +1
//	k = 4:  -1.5, -0.5, +0.5, +1.5
//
// Members are assigned slots in alphabetical order, so the result does not
// depend on map iteration or input order. Singletons stay at offset 0.
//
// # Figures
//
// [Build] turns canonical records into a [Figure]: one [Panel] per group,
// each starting with a summary "Average" row followed by one [Row] per
// indexed occupation. Every point carries its value, its offset and the
// resulting Y = row index + offset.
package layout
