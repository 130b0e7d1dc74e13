package pagegrid

import (
	"bytes"
	"strings"

	"github.com/ivanvanderbyl/markdown"
	"github.com/pkg/errors"
)

// glyphAttributionRatio is the fraction of a glyph's own area that must
// fall inside a cell for the glyph to count as that cell's text.
const glyphAttributionRatio = 0.50

// PopulateCellText fills every cell's text from the page's characters.
// A glyph belongs to a cell when the overlap covers more than half the
// glyph's area, so characters straddling a gridline land in exactly one
// cell. The header is resolved afterwards from the header row.
func PopulateCellText(t *Table, chars []Char) {
	attributed := make([][]Char, len(t.Cells))

	for _, c := range chars {
		area := c.Box.Area()
		if area <= 0 {
			continue
		}
		for i := range t.Cells {
			overlap := intersectRects(c.Box, t.Cells[i].Box)
			if overlap.IsEmpty() {
				continue
			}
			if overlap.Area() > glyphAttributionRatio*area {
				attributed[i] = append(attributed[i], c)
				break
			}
		}
	}

	for i := range t.Cells {
		t.Cells[i].Text = charsToCellText(attributed[i])
	}
	syncRowCellText(t)
	t.resolveHeader()
}

// PopulateCellTextFromSource fills cell text through the extraction
// collaborator's text-under-rect call instead of raw glyph attribution.
func PopulateCellTextFromSource(t *Table, src PageSource, pageIndex int) error {
	for i := range t.Cells {
		text, err := src.TextUnderRect(pageIndex, t.Cells[i].Box)
		if err != nil {
			return errors.Wrapf(err, "fetching text for cell %d", i)
		}
		t.Cells[i].Text = strings.TrimSpace(text)
	}
	syncRowCellText(t)
	t.resolveHeader()
	return nil
}

// syncRowCellText copies cell text into the row views, which alias the
// same geometry but are distinct Cell values.
func syncRowCellText(t *Table) {
	for ri := range t.Rows {
		for ci := range t.Rows[ri].Cells {
			for _, c := range t.Cells {
				if c.Box == t.Rows[ri].Cells[ci].Box {
					t.Rows[ri].Cells[ci].Text = c.Text
					break
				}
			}
		}
	}
}

func charsToCellText(chars []Char) string {
	words := AssembleWords(chars, 3, 3)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// TextGrid renders the table as a row-major grid of cell text. Ragged rows
// are padded with empty strings out to the table's column count.
func (t *Table) TextGrid() [][]string {
	grid := make([][]string, len(t.Rows))
	for ri, row := range t.Rows {
		cells := make([]string, t.ColCount)
		for ci := 0; ci < t.ColCount; ci++ {
			if ci < len(row.Cells) {
				cells[ci] = strings.ReplaceAll(row.Cells[ci].Text, "\n", " ")
			}
		}
		grid[ri] = cells
	}
	return grid
}

// ToMarkdown serializes the table with a header row, a separator and the
// data rows. The header row's cells are skipped from the data unless the
// header was supplied externally, in which case every grid row is data.
func (t *Table) ToMarkdown() string {
	grid := t.TextGrid()
	if len(grid) == 0 {
		return ""
	}

	header := t.Header.Names
	if len(header) == 0 {
		t.resolveHeader()
		header = t.Header.Names
	}

	var rows [][]string
	for ri, row := range grid {
		if !t.Header.Supplied && ri == t.Header.Row {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		rows = [][]string{make([]string, len(header))}
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	if err := md.Build(); err != nil {
		return ""
	}
	return buf.String()
}
