package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func candidateGrid(rows, cols int, cellW, cellH, gap float64) []*PageBlock {
	var blocks []*PageBlock
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x0 := float64(c) * (cellW + gap)
			y0 := float64(r) * (cellH + gap)
			b := textBlock("cell", x0, y0, x0+cellW, y0+cellH)
			b.Type = BlockTableCell
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func TestClusterTableRegions_GridFormsOneRegion(t *testing.T) {
	blocks := candidateGrid(3, 2, 60, 10, 5)
	col := columnWith(blocks...)
	regions := ClusterTableRegions(col)

	require.Len(t, regions, 1)
	require.Len(t, regions[0].Blocks, 6)
	require.Equal(t, Rect{X0: 0, Y0: 0, X1: 125, Y1: 40}, regions[0].Box)
}

func TestClusterTableRegions_TooFewCandidatesDemoted(t *testing.T) {
	blocks := candidateGrid(1, 3, 60, 10, 5)
	col := columnWith(blocks...)
	regions := ClusterTableRegions(col)

	require.Empty(t, regions)
	for _, b := range col.Blocks {
		require.Equal(t, BlockText, b.Type)
	}
}

func TestClusterTableRegions_SingletonDemoted(t *testing.T) {
	blocks := candidateGrid(2, 2, 60, 10, 5)
	outlier := textBlock("far", 500, 500, 560, 510)
	outlier.Type = BlockTableCell
	blocks = append(blocks, outlier)

	col := columnWith(blocks...)
	regions := ClusterTableRegions(col)

	require.Len(t, regions, 1)
	require.Len(t, regions[0].Blocks, 4)
	require.Equal(t, BlockText, outlier.Type)
}

func TestCandidateStackSurvivesMerging(t *testing.T) {
	// Four identical stacked blocks classify as table candidates; the
	// merger, which only touches text blocks, must leave them intact so
	// the clusterer can form a region. Merging before classification
	// would fuse the stack into one prose block and lose the region.
	col := columnWith(
		textBlock("cell", 0, 0, 60, 10),
		textBlock("cell", 0, 15, 60, 25),
		textBlock("cell", 0, 30, 60, 40),
		textBlock("cell", 0, 45, 60, 55),
	)
	ClassifyBlocks(col)
	MergeAdjacentBlocks(col)
	regions := ClusterTableRegions(col)

	require.Len(t, col.Blocks, 4)
	require.Len(t, regions, 1)
	require.Len(t, regions[0].Blocks, 4)
}

func TestClusterTableRegions_SizeIncompatibleExcluded(t *testing.T) {
	blocks := candidateGrid(2, 2, 60, 10, 5)
	huge := textBlock("huge", 0, 30, 300, 120)
	huge.Type = BlockTableCell
	blocks = append(blocks, huge)

	col := columnWith(blocks...)
	regions := ClusterTableRegions(col)

	require.Len(t, regions, 1)
	require.Len(t, regions[0].Blocks, 4)
}
