package pagegrid

// Char is a single extracted grapheme with its geometry and font metadata.
// Chars are produced once per page by the extraction collaborator and are
// never mutated by the engine.
type Char struct {
	Text      string
	Box       Rect
	DocTop    float64 // Vertical position used for ordering and line grouping
	Baseline  float64 // Y-coordinate of the text baseline
	FontName  string
	FontSize  float64
	Upright   bool
	PageIndex int
}

// Word is a run of non-whitespace Chars. Words exist only long enough to
// drive edge synthesis and block construction.
type Word struct {
	Text      string
	Box       Rect
	DocTop    float64
	Upright   bool
	Direction string // "ltr" for upright text, "ttb" otherwise
}

// BlockType classifies a PageBlock for the column/region pipeline.
type BlockType int

const (
	BlockText BlockType = iota
	BlockImage
	BlockTableCell
)

// PageBlock is a contiguous chunk of page content used by the column and
// table-region detector. Blocks start as single text runs and grow as the
// adaptive merger combines them.
type PageBlock struct {
	Box      Rect
	Type     BlockType
	Text     string
	FontSize float64 // Mean font size of member chars
	ColumnID int
}

// Column is a vertical band of the page produced by the column detector.
// The median statistics are recomputed whenever membership changes.
type Column struct {
	X0           float64
	X1           float64
	Blocks       []*PageBlock
	Index        int
	MedianGap    float64
	MedianWidth  float64
	MedianHeight float64
}

// TableRegion is a cluster of table-candidate blocks within one column.
type TableRegion struct {
	Box    Rect
	Blocks []*PageBlock
}

// PageSource is the extraction collaborator. Implementations own document
// parsing, font decoding and rendering; the engine only consumes the
// materialized geometry. All calls are synchronous.
type PageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() (int, error)

	// PageSize returns the page's width and height in the same units as
	// the character geometry.
	PageSize(pageIndex int) (width, height float64, err error)

	// PageCharacters returns the page's characters in reading order.
	PageCharacters(pageIndex int) ([]Char, error)

	// VectorPaths returns the axis-aligned rectangles of the page's vector
	// path objects. Used as the edge source for the "lines" strategy.
	// Implementations may return an empty slice when the page has no
	// usable path geometry.
	VectorPaths(pageIndex int) ([]Rect, error)

	// TextUnderRect returns the text whose glyphs fall under the given
	// rectangle. Used by the exporter for cell content.
	TextUnderRect(pageIndex int, r Rect) (string, error)
}
