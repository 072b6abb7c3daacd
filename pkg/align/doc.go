// Package align decides which occupations appear in a chart, in what order
// and under which display labels.
//
// # Occupation Index
//
// [Intersect] keeps the occupations every source reports, in first-seen
// order; an empty intersection is a fatal NO_COMMON_OCCUPATIONS error.
// [Union] keeps every occupation and leaves gaps to be drawn as missing.
//
// # Ordering
//
// [Order] sorts the index by the mean reference-group difference across
// sources. The sort is stable, so ties keep index order, and occupations
// whose reference mean is undefined go last.
//
// # Labels
//
// [MapLabels] resolves labels from an explicit key-to-label dictionary and
// falls back to [NiceLabel] for unknown keys. [ZipLabels] pairs the sorted
// keys with a curated list positionally, which only works when both sides
// have the same length:
//
//	labels, warnings, err := align.ZipLabels(keys, align.CuratedOccupations, true)
//	if errors.Is(err, errors.ErrCodeLabelMismatch) {
//	    // 41 labels were curated but the data has a different count
//	}
package align
