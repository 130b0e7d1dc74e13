package pagegrid

import (
	"math"
	"sort"
	"strings"
)

const (
	defaultMedianGap = 10.0

	gapQualifyOverlap = 0.40
	mergeOverlapMin   = 0.45
	mergeGapFactor    = 1.8
	mergeFontSizeTol  = 0.30
)

// MergeAdjacentBlocks fuses vertically adjacent text blocks that belong to
// the same paragraph, using a gap threshold adapted to the column's own
// spacing. The median gap is computed once per column, before any merge;
// merges consume gaps and would otherwise skew the statistic mid-pass.
// Each merge unions the bboxes, joins the text with a space and removes
// the second block, then the scan restarts; the pass ends when a full
// scan finds nothing mergeable. Block count strictly decreases on every
// merge, so this terminates.
func MergeAdjacentBlocks(col *Column) {
	initial := sortedTextBlocks(col.Blocks)
	if len(initial) < 2 {
		return
	}
	threshold := mergeGapFactor * medianQualifyingGap(initial)

	for {
		blocks := sortedTextBlocks(col.Blocks)
		if len(blocks) < 2 {
			col.RecomputeStats()
			return
		}

		merged := false
		for i := 0; i < len(blocks)-1; i++ {
			a, b := blocks[i], blocks[i+1]
			if !mergeable(a, b, threshold) {
				continue
			}
			a.Box = mergeRects(a.Box, b.Box)
			a.Text = strings.TrimSpace(a.Text + " " + b.Text)
			col.Blocks = removeBlock(col.Blocks, b)
			merged = true
			break
		}
		if !merged {
			col.RecomputeStats()
			return
		}
	}
}

func sortedTextBlocks(blocks []*PageBlock) []*PageBlock {
	var out []*PageBlock
	for _, b := range blocks {
		if b.Type == BlockText {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Box.Y0 < out[j].Box.Y0 })
	return out
}

// medianQualifyingGap is the median vertical gap between consecutive
// blocks whose horizontal overlap exceeds gapQualifyOverlap. With fewer
// than two qualifying gaps the default is used.
func medianQualifyingGap(blocks []*PageBlock) float64 {
	var gaps []float64
	for i := 0; i < len(blocks)-1; i++ {
		a, b := blocks[i], blocks[i+1]
		if overlapRatio(a.Box.X0, a.Box.X1, b.Box.X0, b.Box.X1) <= gapQualifyOverlap {
			continue
		}
		if gap := b.Box.Y0 - a.Box.Y1; gap >= 0 {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) < 2 {
		return defaultMedianGap
	}
	return calculateMedian(gaps)
}

func mergeable(a, b *PageBlock, gapThreshold float64) bool {
	gap := b.Box.Y0 - a.Box.Y1
	if gap < 0 || gap > gapThreshold {
		return false
	}
	if overlapRatio(a.Box.X0, a.Box.X1, b.Box.X0, b.Box.X1) < mergeOverlapMin {
		return false
	}
	if a.FontSize > 0 && math.Abs(a.FontSize-b.FontSize) > mergeFontSizeTol*a.FontSize {
		return false
	}
	return true
}

func removeBlock(blocks []*PageBlock, target *PageBlock) []*PageBlock {
	for i, b := range blocks {
		if b == target {
			return append(blocks[:i], blocks[i+1:]...)
		}
	}
	return blocks
}
