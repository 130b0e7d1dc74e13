package pagegrid

import (
	"fmt"
	"math"
	"sort"
)

const (
	// Minimum cell width; narrower candidates are lattice artifacts.
	minCellWidth = 5.0

	// Vertical gap between consecutive rows above which a connected
	// component is split into separate tables.
	tableSplitGapThreshold = 50.0

	rowTopTolerance = 1.0
)

// Cell is a rectangle bounded by four lattice intersections.
type Cell struct {
	Box  Rect
	Text string
}

// Row is a left-to-right ordered sequence of cells sharing a y-cluster.
type Row struct {
	Cells []Cell
}

// Header names a table's columns. Row is the header row index within the
// table; Supplied marks a header provided externally rather than inferred
// from the first row.
type Header struct {
	Row      int
	Names    []string
	Supplied bool
}

// Table is a connected component of cells with derived rows and header.
type Table struct {
	Box      Rect
	Cells    []Cell
	Rows     []Row
	ColCount int
	Header   Header
}

// RowCount returns the number of derived rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// intersectionsToCells derives cells from the intersection lattice. Points
// are sorted by (y, x); for each top-left candidate the nearest point
// directly below and directly right are located, and a cell is emitted when
// the implied bottom-right corner also exists in the lattice. Worst case
// O(n^3) over the intersection count, which is fine at page scale; do not
// replace with a different search shape without rederiving the tie-breaks.
func intersectionsToCells(points []Intersection) []Cell {
	if len(points) == 0 {
		return nil
	}

	pts := make([]Point, len(points))
	for i, in := range points {
		pts[i] = in.Point
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].Y != pts[j].Y {
			return pts[i].Y < pts[j].Y
		}
		return pts[i].X < pts[j].X
	})

	var cells []Cell
	for i, p := range pts {
		below, okBelow := nearestBelow(pts, i)
		right, okRight := nearestRight(pts, i)
		if !okBelow || !okRight {
			continue
		}
		if !latticeContains(pts, Point{X: right.X, Y: below.Y}) {
			continue
		}
		box := Rect{X0: p.X, Y0: p.Y, X1: right.X, Y1: below.Y}
		if box.Width() <= minCellWidth {
			continue
		}
		cells = append(cells, Cell{Box: box})
	}
	return cells
}

func nearestBelow(pts []Point, i int) (Point, bool) {
	var best Point
	found := false
	for _, q := range pts {
		if math.Abs(q.X-pts[i].X) > intersectionEpsilon || q.Y <= pts[i].Y+intersectionEpsilon {
			continue
		}
		if !found || q.Y < best.Y {
			best = q
			found = true
		}
	}
	return best, found
}

func nearestRight(pts []Point, i int) (Point, bool) {
	var best Point
	found := false
	for _, q := range pts {
		if math.Abs(q.Y-pts[i].Y) > intersectionEpsilon || q.X <= pts[i].X+intersectionEpsilon {
			continue
		}
		if !found || q.X < best.X {
			best = q
			found = true
		}
	}
	return best, found
}

func latticeContains(pts []Point, p Point) bool {
	for _, q := range pts {
		if math.Abs(q.X-p.X) <= intersectionEpsilon && math.Abs(q.Y-p.Y) <= intersectionEpsilon {
			return true
		}
	}
	return false
}

// cellsToTables groups cells into connected components by shared corners.
// Two cells belong to the same table when any of their four corners
// coincide within intersectionEpsilon. The flood-fill runs off an explicit
// worklist; components with fewer than 2 cells are discarded, and a
// component whose consecutive rows are separated by more than
// tableSplitGapThreshold is split into independent tables.
func cellsToTables(cells []Cell) []*Table {
	used := make([]bool, len(cells))
	var tables []*Table

	for seed := range cells {
		if used[seed] {
			continue
		}
		used[seed] = true
		component := []Cell{cells[seed]}
		worklist := []int{seed}

		for len(worklist) > 0 {
			cur := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for j := range cells {
				if used[j] {
					continue
				}
				if cellsShareCorner(cells[cur], cells[j]) {
					used[j] = true
					component = append(component, cells[j])
					worklist = append(worklist, j)
				}
			}
		}

		if len(component) < 2 {
			continue
		}
		for _, group := range splitOnRowGaps(component) {
			if t := createTable(group); t != nil {
				tables = append(tables, t)
			}
		}
	}

	sort.Slice(tables, func(i, j int) bool {
		if tables[i].Box.Y0 != tables[j].Box.Y0 {
			return tables[i].Box.Y0 < tables[j].Box.Y0
		}
		return tables[i].Box.X0 < tables[j].Box.X0
	})
	return tables
}

func cellsShareCorner(a, b Cell) bool {
	for _, p := range cellCorners(a) {
		for _, q := range cellCorners(b) {
			if math.Abs(p.X-q.X) <= intersectionEpsilon && math.Abs(p.Y-q.Y) <= intersectionEpsilon {
				return true
			}
		}
	}
	return false
}

func cellCorners(c Cell) [4]Point {
	return [4]Point{
		{X: c.Box.X0, Y: c.Box.Y0},
		{X: c.Box.X1, Y: c.Box.Y0},
		{X: c.Box.X0, Y: c.Box.Y1},
		{X: c.Box.X1, Y: c.Box.Y1},
	}
}

// splitOnRowGaps breaks a component into vertically separate groups
// wherever the gap between one row's bottom and the next row's top exceeds
// tableSplitGapThreshold. Footnote blocks and unrelated boxed content
// sharing an x-lattice with a real table end up in their own group.
func splitOnRowGaps(cells []Cell) [][]Cell {
	rows := clusterCellRows(cells)
	if len(rows) < 2 {
		return [][]Cell{cells}
	}

	var groups [][]Cell
	current := append([]Cell(nil), rows[0].Cells...)
	for i := 1; i < len(rows); i++ {
		prevBottom := rowBottom(rows[i-1])
		if rows[i].Cells[0].Box.Y0-prevBottom > tableSplitGapThreshold {
			groups = append(groups, current)
			current = nil
		}
		current = append(current, rows[i].Cells...)
	}
	groups = append(groups, current)
	return groups
}

func rowBottom(r Row) float64 {
	bottom := r.Cells[0].Box.Y1
	for _, c := range r.Cells[1:] {
		bottom = math.Max(bottom, c.Box.Y1)
	}
	return bottom
}

// clusterCellRows groups cells into rows by top-y clustering and sorts each
// row left to right.
func clusterCellRows(cells []Cell) []Row {
	tops := make([]float64, len(cells))
	for i, c := range cells {
		tops[i] = c.Box.Y0
	}
	ids := clusterValues(tops, rowTopTolerance)

	grouped := make([][]Cell, clusterCount(ids))
	for i, id := range ids {
		grouped[id] = append(grouped[id], cells[i])
	}

	rows := make([]Row, 0, len(grouped))
	for _, cs := range grouped {
		sort.Slice(cs, func(i, j int) bool { return cs[i].Box.X0 < cs[j].Box.X0 })
		rows = append(rows, Row{Cells: cs})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Cells[0].Box.Y0 < rows[j].Cells[0].Box.Y0
	})
	return rows
}

// createTable builds a table from one connected cell group. Groups that do
// not form at least a 2x2 grid are not plausible tables and are dropped.
func createTable(cells []Cell) *Table {
	if len(cells) < 2 {
		return nil
	}
	rows := clusterCellRows(cells)

	colCount := 0
	for _, r := range rows {
		if len(r.Cells) > colCount {
			colCount = len(r.Cells)
		}
	}
	if len(rows) < 2 || colCount < 2 {
		return nil
	}

	box := cells[0].Box
	for _, c := range cells[1:] {
		box = mergeRects(box, c.Box)
	}

	return &Table{
		Box:      box,
		Cells:    cells,
		Rows:     rows,
		ColCount: colCount,
		Header:   Header{Row: 0},
	}
}

// resolveHeader fills in column names from the header row's cell text,
// falling back to Col<N> for empty cells. Header cells are matched to
// columns by their x-position rather than ordinal, so a ragged header row
// with a missing interior cell does not shift names left relative to the
// columns beneath it.
func (t *Table) resolveHeader() {
	if t.Header.Row < 0 || t.Header.Row >= len(t.Rows) {
		t.Header.Row = 0
	}
	names := make([]string, t.ColCount)
	for i := range names {
		names[i] = defaultColumnName(i + 1)
	}

	starts := t.columnStarts()
	for _, c := range t.Rows[t.Header.Row].Cells {
		if c.Text == "" {
			continue
		}
		idx := nearestColumnIndex(starts, c.Box.X0)
		if idx >= 0 && idx < len(names) {
			names[idx] = c.Text
		}
	}
	t.Header.Names = names
}

// columnStarts derives the table's column x-positions by clustering the
// left edges of all cells. Cluster ids ascend with x, so the returned
// means are already in left-to-right column order.
func (t *Table) columnStarts() []float64 {
	xs := make([]float64, len(t.Cells))
	for i, c := range t.Cells {
		xs[i] = c.Box.X0
	}
	ids := clusterValues(xs, rowTopTolerance)

	sums := make([]float64, clusterCount(ids))
	counts := make([]int, len(sums))
	for i, id := range ids {
		sums[id] += xs[i]
		counts[id]++
	}
	for i := range sums {
		sums[i] /= float64(counts[i])
	}
	return sums
}

func nearestColumnIndex(starts []float64, x float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, s := range starts {
		if d := math.Abs(s - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func defaultColumnName(n int) string {
	return fmt.Sprintf("Col%d", n)
}
