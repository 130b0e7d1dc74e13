package pagegrid

import "math"

const (
	// Left/right edges within this many units count as aligned.
	edgeAlignTolerance = 5.0

	narrowWidthRatio     = 0.70
	narrowAlignThreshold = 0.30

	shortSpanRatio      = 0.60
	shortSpanAlignScore = 0.20

	similarWidthRatio = 0.20
	similarWidthMin   = 2
)

// ClassifyBlocks marks table-candidate blocks within a column. A text
// block becomes a candidate when it is unusually narrow and aligned with
// its neighbors, spans little of the column while still aligned, or has at
// least two width-twins in the column. Classification only ever promotes;
// a candidate is never demoted back to text within one run.
func ClassifyBlocks(col *Column) {
	blocks := textBlocks(col.Blocks)
	if len(blocks) < 2 {
		return
	}
	col.RecomputeStats()
	columnWidth := col.X1 - col.X0

	for _, b := range blocks {
		if b.Type == BlockTableCell {
			continue
		}
		w := b.Box.Width()
		align := alignmentScore(b, blocks)

		switch {
		case col.MedianWidth > 0 && w < narrowWidthRatio*col.MedianWidth && align > narrowAlignThreshold:
			b.Type = BlockTableCell
		case columnWidth > 0 && w < shortSpanRatio*columnWidth && align > shortSpanAlignScore:
			b.Type = BlockTableCell
		case widthTwins(b, blocks) >= similarWidthMin:
			b.Type = BlockTableCell
		}
	}
}

func textBlocks(blocks []*PageBlock) []*PageBlock {
	var out []*PageBlock
	for _, b := range blocks {
		if b.Type == BlockText || b.Type == BlockTableCell {
			out = append(out, b)
		}
	}
	return out
}

// alignmentScore is the fraction of the other blocks sharing this block's
// left or right edge within edgeAlignTolerance.
func alignmentScore(b *PageBlock, blocks []*PageBlock) float64 {
	others := 0
	aligned := 0
	for _, o := range blocks {
		if o == b {
			continue
		}
		others++
		if math.Abs(o.Box.X0-b.Box.X0) <= edgeAlignTolerance ||
			math.Abs(o.Box.X1-b.Box.X1) <= edgeAlignTolerance {
			aligned++
		}
	}
	if others == 0 {
		return 0
	}
	return float64(aligned) / float64(others)
}

// widthTwins counts other blocks whose width is within similarWidthRatio
// of this block's own width.
func widthTwins(b *PageBlock, blocks []*PageBlock) int {
	w := b.Box.Width()
	if w <= 0 {
		return 0
	}
	twins := 0
	for _, o := range blocks {
		if o == b {
			continue
		}
		if math.Abs(o.Box.Width()-w) <= similarWidthRatio*w {
			twins++
		}
	}
	return twins
}
