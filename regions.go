package pagegrid

import "math"

const (
	// Minimum table-candidate blocks in a column for region clustering to
	// run at all.
	minCandidatesForRegion = 4

	regionAlignOverlap = 0.70
	regionSideRatioMax = 2.5
	minRegionCells     = 2
)

// ClusterTableRegions groups a column's table-candidate blocks into table
// regions. Candidates are flood-filled into clusters when they are row or
// column aligned with a member (70% overlap on one axis and proximity
// below the column's median width/height on the other) and of compatible
// size. Clusters of at least minRegionCells become regions; singleton
// candidates are demoted back to text.
func ClusterTableRegions(col *Column) []*TableRegion {
	var candidates []*PageBlock
	for _, b := range col.Blocks {
		if b.Type == BlockTableCell {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) < minCandidatesForRegion {
		demoteToText(candidates)
		return nil
	}

	used := make([]bool, len(candidates))
	var regions []*TableRegion

	for seed := range candidates {
		if used[seed] {
			continue
		}
		used[seed] = true
		cluster := []*PageBlock{candidates[seed]}
		worklist := []*PageBlock{candidates[seed]}

		for len(worklist) > 0 {
			cur := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for i, cand := range candidates {
				if used[i] {
					continue
				}
				if blocksClusterable(cur, cand, col) {
					used[i] = true
					cluster = append(cluster, cand)
					worklist = append(worklist, cand)
				}
			}
		}

		if len(cluster) < minRegionCells {
			demoteToText(cluster)
			continue
		}
		regions = append(regions, newTableRegion(cluster))
	}
	return regions
}

func demoteToText(blocks []*PageBlock) {
	for _, b := range blocks {
		b.Type = BlockText
	}
}

// blocksClusterable reports whether two candidate blocks sit in the same
// table grid: aligned as a row (shared y-band, close in x) or as a column
// (shared x-band, close in y), with sizes within regionSideRatioMax of
// each other.
func blocksClusterable(a, b *PageBlock, col *Column) bool {
	yOverlap := overlapRatio(a.Box.Y0, a.Box.Y1, b.Box.Y0, b.Box.Y1)
	xOverlap := overlapRatio(a.Box.X0, a.Box.X1, b.Box.X0, b.Box.X1)

	xGap := math.Max(a.Box.X0, b.Box.X0) - math.Min(a.Box.X1, b.Box.X1)
	yGap := math.Max(a.Box.Y0, b.Box.Y0) - math.Min(a.Box.Y1, b.Box.Y1)

	rowAligned := yOverlap >= regionAlignOverlap && xGap < col.MedianWidth
	colAligned := xOverlap >= regionAlignOverlap && yGap < col.MedianHeight
	if !rowAligned && !colAligned {
		return false
	}
	return sizeCompatible(a, b)
}

func sizeCompatible(a, b *PageBlock) bool {
	if !sideRatioOK(a.Box.Width(), b.Box.Width()) {
		return false
	}
	return sideRatioOK(a.Box.Height(), b.Box.Height())
}

func sideRatioOK(x, y float64) bool {
	if x <= 0 || y <= 0 {
		return false
	}
	ratio := x / y
	if ratio < 1 {
		ratio = 1 / ratio
	}
	return ratio <= regionSideRatioMax
}

func newTableRegion(blocks []*PageBlock) *TableRegion {
	box := blocks[0].Box
	for _, b := range blocks[1:] {
		box = mergeRects(box, b.Box)
	}
	return &TableRegion{Box: box, Blocks: blocks}
}
