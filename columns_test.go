package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func textBlock(text string, x0, y0, x1, y1 float64) *PageBlock {
	return &PageBlock{
		Box:      Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Type:     BlockText,
		Text:     text,
		FontSize: 10,
	}
}

func TestDetectColumns_ZeroBlocks(t *testing.T) {
	require.Empty(t, DetectColumns(nil, 600))
}

func TestDetectColumns_NoGapsSingleFullWidthColumn(t *testing.T) {
	blocks := []*PageBlock{
		textBlock("a", 50, 0, 250, 10),
		textBlock("b", 200, 20, 400, 30),
		textBlock("c", 350, 40, 550, 50),
	}
	cols := DetectColumns(blocks, 600)

	require.Len(t, cols, 1)
	require.Equal(t, 0.0, cols[0].X0)
	require.Equal(t, 600.0, cols[0].X1)
	require.Len(t, cols[0].Blocks, 3)
}

func TestDetectColumns_TwoColumnLayout(t *testing.T) {
	var blocks []*PageBlock
	for y := 0.0; y < 100; y += 20 {
		blocks = append(blocks,
			textBlock("left", 50, y, 250, y+10),
			textBlock("right", 350, y, 550, y+10),
		)
	}
	cols := DetectColumns(blocks, 600)

	require.Len(t, cols, 2)
	require.Len(t, cols[0].Blocks, 5)
	require.Len(t, cols[1].Blocks, 5)
	require.Less(t, cols[0].X1, cols[1].X0)
	for _, b := range cols[0].Blocks {
		require.Equal(t, 0, b.ColumnID)
	}
	for _, b := range cols[1].Blocks {
		require.Equal(t, 1, b.ColumnID)
	}
}

func TestDetectColumns_SpanningBlockExcludedFromHistogram(t *testing.T) {
	var blocks []*PageBlock
	for y := 20.0; y < 120; y += 20 {
		blocks = append(blocks,
			textBlock("left", 50, y, 250, y+10),
			textBlock("right", 350, y, 550, y+10),
		)
	}
	// A full-width title must not glue the two columns together.
	blocks = append(blocks, textBlock("title", 50, 0, 550, 12))
	cols := DetectColumns(blocks, 600)

	require.Len(t, cols, 2)
}

func TestDetectColumns_TinyBlockExcludedFromHistogram(t *testing.T) {
	var blocks []*PageBlock
	for y := 0.0; y < 100; y += 20 {
		blocks = append(blocks,
			textBlock("left", 50, y, 250, y+10),
			textBlock("right", 350, y, 550, y+10),
		)
	}
	// A stray mark in the gutter is too narrow to count as occupancy.
	blocks = append(blocks, textBlock(".", 298, 40, 302, 50))
	cols := DetectColumns(blocks, 600)

	require.Len(t, cols, 2)
}

func TestAssignBlocks_TieBreaksToLowestIndex(t *testing.T) {
	cols := []*Column{
		{X0: 0, X1: 300, Index: 0},
		{X0: 300, X1: 600, Index: 1},
	}
	b := textBlock("mid", 200, 0, 400, 10)
	assignBlocksToColumns([]*PageBlock{b}, cols)

	// Equal overlap with both bands resolves to the first.
	require.Equal(t, 0, b.ColumnID)
	require.Len(t, cols[0].Blocks, 1)
	require.Empty(t, cols[1].Blocks)
}

func TestColumnRecomputeStats(t *testing.T) {
	col := &Column{X0: 0, X1: 300}
	col.Blocks = []*PageBlock{
		textBlock("a", 0, 0, 100, 10),
		textBlock("b", 0, 15, 100, 25),
		textBlock("c", 0, 30, 100, 40),
	}
	col.RecomputeStats()

	require.Equal(t, 100.0, col.MedianWidth)
	require.Equal(t, 10.0, col.MedianHeight)
	require.Equal(t, 5.0, col.MedianGap)
}
