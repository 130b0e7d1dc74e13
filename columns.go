package pagegrid

import (
	"math"
	"sort"
)

const (
	maxHistogramBins = 1000

	// A run of zero-occupancy bins must be wider than this to count as a
	// column boundary.
	minGapBins = 5

	// Blocks wider than this fraction of the content width span columns
	// (titles, full-width figures) and are excluded from the histogram.
	spanningBlockRatio = 0.60

	// Blocks narrower than this are noise (bullets, stray marks) and are
	// excluded from the histogram.
	minHistogramBlockWidth = 10.0
)

// DetectColumns projects text blocks onto the x-axis and derives column
// bands from zero-occupancy gaps in the histogram. Zero blocks yield zero
// columns; a page with no qualifying gap yields one column spanning the
// full page width. Every block is then assigned to the band with the best
// horizontal overlap.
func DetectColumns(blocks []*PageBlock, pageWidth float64) []*Column {
	if len(blocks) == 0 {
		return nil
	}

	binCount := int(pageWidth / 2)
	if binCount > maxHistogramBins {
		binCount = maxHistogramBins
	}
	if binCount < 1 {
		binCount = 1
	}
	binWidth := pageWidth / float64(binCount)

	contentWidth := contentSpan(blocks)
	histogram := make([]int, binCount)
	for _, b := range blocks {
		w := b.Box.Width()
		if w < minHistogramBlockWidth || w > contentWidth*spanningBlockRatio {
			continue
		}
		lo := int(b.Box.X0 / binWidth)
		hi := int(b.Box.X1 / binWidth)
		if lo < 0 {
			lo = 0
		}
		if hi >= binCount {
			hi = binCount - 1
		}
		for i := lo; i <= hi; i++ {
			histogram[i]++
		}
	}

	bands := histogramToBands(histogram, binWidth, pageWidth)
	columns := make([]*Column, len(bands))
	for i, band := range bands {
		columns[i] = &Column{X0: band[0], X1: band[1], Index: i}
	}

	assignBlocksToColumns(blocks, columns)
	for _, col := range columns {
		col.RecomputeStats()
	}
	return columns
}

// RecomputeStats refreshes the column's median gap/width/height. Call it
// whenever membership changes; the classifier, merger and region clusterer
// all read these.
func (c *Column) RecomputeStats() {
	if len(c.Blocks) == 0 {
		c.MedianGap, c.MedianWidth, c.MedianHeight = 0, 0, 0
		return
	}
	widths := make([]float64, len(c.Blocks))
	heights := make([]float64, len(c.Blocks))
	for i, b := range c.Blocks {
		widths[i] = b.Box.Width()
		heights[i] = b.Box.Height()
	}
	c.MedianWidth = calculateMedian(widths)
	c.MedianHeight = calculateMedian(heights)

	var gaps []float64
	for i := 1; i < len(c.Blocks); i++ {
		gap := c.Blocks[i].Box.Y0 - c.Blocks[i-1].Box.Y1
		if gap >= 0 {
			gaps = append(gaps, gap)
		}
	}
	c.MedianGap = calculateMedian(gaps)
}

func contentSpan(blocks []*PageBlock) float64 {
	minX := math.Inf(1)
	maxX := math.Inf(-1)
	for _, b := range blocks {
		minX = math.Min(minX, b.Box.X0)
		maxX = math.Max(maxX, b.Box.X1)
	}
	if maxX <= minX {
		return 0
	}
	return maxX - minX
}

// histogramToBands converts occupied bin runs into [x0, x1] column bands.
// Gaps of minGapBins or fewer zero bins are bridged.
func histogramToBands(histogram []int, binWidth, pageWidth float64) [][2]float64 {
	var bands [][2]float64
	inBand := false
	var start int
	zeros := 0

	for i, count := range histogram {
		if count > 0 {
			if !inBand {
				inBand = true
				start = i
			}
			zeros = 0
			continue
		}
		if !inBand {
			continue
		}
		zeros++
		if zeros > minGapBins {
			end := i - zeros + 1
			bands = append(bands, [2]float64{float64(start) * binWidth, float64(end) * binWidth})
			inBand = false
			zeros = 0
		}
	}
	if inBand {
		end := len(histogram) - zeros
		bands = append(bands, [2]float64{float64(start) * binWidth, float64(end) * binWidth})
	}

	if len(bands) == 0 {
		return [][2]float64{{0, pageWidth}}
	}
	if len(bands) == 1 {
		// A single band is not a multi-column layout; widen it to the
		// full page so downstream consumers see one reading column.
		return [][2]float64{{0, pageWidth}}
	}
	return bands
}

// assignBlocksToColumns maps every block to the column with the largest
// horizontal overlap ratio, overlap length relative to the shorter of the
// block and column widths. Ties break to the lowest column index.
func assignBlocksToColumns(blocks []*PageBlock, columns []*Column) {
	for _, b := range blocks {
		best := 0
		bestRatio := -1.0
		for i, col := range columns {
			ratio := overlapRatio(b.Box.X0, b.Box.X1, col.X0, col.X1)
			if ratio > bestRatio {
				bestRatio = ratio
				best = i
			}
		}
		b.ColumnID = best
		columns[best].Blocks = append(columns[best].Blocks, b)
	}
	for _, col := range columns {
		sort.SliceStable(col.Blocks, func(i, j int) bool {
			return col.Blocks[i].Box.Y0 < col.Blocks[j].Box.Y0
		})
	}
}
