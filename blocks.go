package pagegrid

import (
	"math"
	"sort"
	"strings"
)

// BuildPageBlocks derives layout blocks from raw characters for the
// page-segmentation pipeline. Characters are grouped into text lines by
// baseline clustering, and each line is split into segments wherever the
// horizontal gap between neighboring characters exceeds the split
// threshold for that font size. Gutter-separated columns produce separate
// blocks this way even when they share a baseline.
func BuildPageBlocks(chars []Char, yTol float64) []*PageBlock {
	lines := groupCharsIntoLines(chars, yTol)

	var blocks []*PageBlock
	for _, line := range lines {
		for _, segment := range splitLineSegments(line) {
			if b := segmentToBlock(segment); b != nil {
				blocks = append(blocks, b)
			}
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Box.Y0 != blocks[j].Box.Y0 {
			return blocks[i].Box.Y0 < blocks[j].Box.Y0
		}
		return blocks[i].Box.X0 < blocks[j].Box.X0
	})
	return blocks
}

func groupCharsIntoLines(chars []Char, yTol float64) [][]Char {
	if len(chars) == 0 {
		return nil
	}
	tops := make([]float64, len(chars))
	for i, c := range chars {
		tops[i] = c.DocTop
	}
	ids := clusterValues(tops, yTol)

	lines := make([][]Char, clusterCount(ids))
	for i, id := range ids {
		lines[id] = append(lines[id], chars[i])
	}
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].Box.X0 < line[j].Box.X0 })
	}
	return lines
}

// splitLineSegments breaks one baseline's characters at horizontal gaps
// wide enough to indicate a column gutter or table cell boundary. The
// threshold scales with font size but never drops below 15 units.
func splitLineSegments(line []Char) [][]Char {
	var segments [][]Char
	var current []Char
	for i, c := range line {
		if i > 0 {
			threshold := math.Max(15, c.FontSize*2)
			if c.Box.X0-line[i-1].Box.X1 > threshold {
				segments = append(segments, current)
				current = nil
			}
		}
		current = append(current, c)
	}
	if len(current) > 0 {
		segments = append(segments, current)
	}
	return segments
}

func segmentToBlock(chars []Char) *PageBlock {
	var sb strings.Builder
	var box Rect
	var fontSum float64
	started := false

	for _, c := range chars {
		sb.WriteString(c.Text)
		fontSum += c.FontSize
		if !started {
			box = c.Box
			started = true
		} else {
			box = mergeRects(box, c.Box)
		}
	}
	text := strings.TrimSpace(sb.String())
	if !started || text == "" {
		return nil
	}
	return &PageBlock{
		Box:      box,
		Type:     BlockText,
		Text:     text,
		FontSize: fontSum / float64(len(chars)),
	}
}
