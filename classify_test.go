package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func columnWith(blocks ...*PageBlock) *Column {
	col := &Column{X0: 0, X1: 400, Blocks: blocks}
	col.RecomputeStats()
	return col
}

func TestClassifyBlocks_NarrowAlignedBecomesCandidate(t *testing.T) {
	// Wide prose blocks plus a stack of short left-aligned cell blocks.
	col := columnWith(
		textBlock("prose one", 0, 0, 380, 10),
		textBlock("prose two", 0, 15, 380, 25),
		textBlock("val", 0, 40, 80, 50),
		textBlock("val", 0, 55, 80, 65),
		textBlock("val", 0, 70, 80, 80),
	)
	ClassifyBlocks(col)

	candidates := 0
	for _, b := range col.Blocks {
		if b.Type == BlockTableCell {
			candidates++
		}
	}
	require.GreaterOrEqual(t, candidates, 3)
}

func TestClassifyBlocks_UnalignedDissimilarStaysText(t *testing.T) {
	col := columnWith(
		textBlock("one", 0, 0, 380, 10),
		textBlock("two", 10, 15, 210, 25),
		textBlock("three", 30, 30, 130, 40),
	)
	ClassifyBlocks(col)

	for _, b := range col.Blocks {
		require.Equal(t, BlockText, b.Type)
	}
}

func TestClassifyBlocks_Monotone(t *testing.T) {
	col := columnWith(
		textBlock("prose", 0, 0, 380, 10),
		textBlock("val", 0, 20, 80, 30),
		textBlock("val", 0, 35, 80, 45),
		textBlock("val", 0, 50, 80, 60),
	)
	ClassifyBlocks(col)

	var first []BlockType
	for _, b := range col.Blocks {
		first = append(first, b.Type)
	}

	// A second pass may promote more blocks but never demotes one.
	ClassifyBlocks(col)
	for i, b := range col.Blocks {
		if first[i] == BlockTableCell {
			require.Equal(t, BlockTableCell, b.Type)
		}
	}
}

func TestClassifyBlocks_TooFewBlocks(t *testing.T) {
	col := columnWith(textBlock("only", 0, 0, 80, 10))
	ClassifyBlocks(col)
	require.Equal(t, BlockText, col.Blocks[0].Type)
}
