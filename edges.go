package pagegrid

import "math"

// Edge orientation and source tags.
const (
	OrientationH = "h"
	OrientationV = "v"

	EdgeSourceText = "text"
	EdgeSourcePath = "path"
)

// Edge is an axis-aligned line segment representing a candidate table
// gridline. Edges are mutable during snap/join/filter; after processing an
// edge is degenerate in its orthogonal axis.
type Edge struct {
	X0          float64
	X1          float64
	Top         float64
	Bottom      float64
	Width       float64 // For horizontal edges
	Height      float64 // For vertical edges
	Orientation string
	Source      string
}

// length returns the edge's extent along its own orientation.
func (e Edge) length() float64 {
	if e.Orientation == OrientationV {
		return e.Bottom - e.Top
	}
	return e.X1 - e.X0
}

// position returns the edge's defining coordinate: y for horizontal edges,
// x for vertical ones.
func (e Edge) position() float64 {
	if e.Orientation == OrientationV {
		return e.X0
	}
	return e.Top
}

// wordsToEdgesHorizontal synthesizes horizontal edges from rows of aligned
// words. Word tops are clustered with a 1.0 unit tolerance; every cluster
// with at least minWords members contributes a top and a bottom edge
// spanning the union bbox of its words.
func wordsToEdgesHorizontal(words []Word, minWords int) []Edge {
	if len(words) == 0 {
		return nil
	}

	tops := make([]float64, len(words))
	for i, w := range words {
		tops[i] = w.Box.Y0
	}
	ids := clusterValues(tops, 1.0)

	groups := make([][]Word, clusterCount(ids))
	for i, id := range ids {
		groups[id] = append(groups[id], words[i])
	}

	var edges []Edge
	for _, group := range groups {
		if len(group) < minWords {
			continue
		}
		box := group[0].Box
		for _, w := range group[1:] {
			box = mergeRects(box, w.Box)
		}
		for _, y := range []float64{box.Y0, box.Y1} {
			edges = append(edges, Edge{
				X0:          box.X0,
				X1:          box.X1,
				Top:         y,
				Bottom:      y,
				Width:       box.Width(),
				Orientation: OrientationH,
				Source:      EdgeSourceText,
			})
		}
	}
	return edges
}

// wordsToEdgesVertical synthesizes vertical edges from columns of aligned
// words. Every word contributes three candidate coordinates (left, right,
// center); the combined set is clustered with a 1.0 unit tolerance. For
// each cluster with at least minWords members, the words whose left, right
// or center lies within 2.0 units of the cluster mean define one vertical
// edge at that mean spanning their union bbox.
func wordsToEdgesVertical(words []Word, minWords int) []Edge {
	if len(words) == 0 {
		return nil
	}

	coords := make([]float64, 0, len(words)*3)
	for _, w := range words {
		coords = append(coords, w.Box.X0, w.Box.X1, w.Box.CenterX())
	}
	ids := clusterValues(coords, 1.0)

	sums := make([]float64, clusterCount(ids))
	counts := make([]int, len(sums))
	for i, id := range ids {
		sums[id] += coords[i]
		counts[id]++
	}

	var edges []Edge
	for id := range sums {
		if counts[id] < minWords {
			continue
		}
		mean := sums[id] / float64(counts[id])

		var box Rect
		found := false
		for _, w := range words {
			if math.Abs(w.Box.X0-mean) <= 2.0 ||
				math.Abs(w.Box.X1-mean) <= 2.0 ||
				math.Abs(w.Box.CenterX()-mean) <= 2.0 {
				if !found {
					box = w.Box
					found = true
				} else {
					box = mergeRects(box, w.Box)
				}
			}
		}
		if !found {
			continue
		}
		edges = append(edges, Edge{
			X0:          mean,
			X1:          mean,
			Top:         box.Y0,
			Bottom:      box.Y1,
			Height:      box.Height(),
			Orientation: OrientationV,
			Source:      EdgeSourceText,
		})
	}
	return edges
}

// PathRectsToEdges decomposes axis-aligned vector-path rectangles into their
// four border edges for the "lines" strategy. Rectangles hugging the page
// boundary or spanning nearly the whole page are dropped: those are page or
// content-frame borders, and keeping them turns the entire page into one
// giant table candidate.
func PathRectsToEdges(rects []Rect, pageWidth, pageHeight float64) []Edge {
	var edges []Edge
	for _, r := range rects {
		// Point-like bounds carry no usable geometry; degenerate line
		// rects (zero height or width) still contribute edges.
		if r.Width() <= 0 && r.Height() <= 0 {
			continue
		}
		for _, e := range rectBorderEdges(r) {
			if isPageBorder(e, pageWidth, pageHeight) {
				continue
			}
			edges = append(edges, e)
		}
	}
	return edges
}

func rectBorderEdges(r Rect) []Edge {
	return []Edge{
		{X0: r.X0, X1: r.X1, Top: r.Y0, Bottom: r.Y0, Width: r.Width(), Orientation: OrientationH, Source: EdgeSourcePath},
		{X0: r.X0, X1: r.X1, Top: r.Y1, Bottom: r.Y1, Width: r.Width(), Orientation: OrientationH, Source: EdgeSourcePath},
		{X0: r.X0, X1: r.X0, Top: r.Y0, Bottom: r.Y1, Height: r.Height(), Orientation: OrientationV, Source: EdgeSourcePath},
		{X0: r.X1, X1: r.X1, Top: r.Y0, Bottom: r.Y1, Height: r.Height(), Orientation: OrientationV, Source: EdgeSourcePath},
	}
}

// isPageBorder reports whether an edge sits at the page boundary or spans
// most of the page dimension.
func isPageBorder(edge Edge, pageWidth, pageHeight float64) bool {
	const borderTolerance = 20.0
	const fullSpanThreshold = 0.90

	if edge.Orientation == OrientationH {
		if edge.Top < borderTolerance || edge.Top > pageHeight-borderTolerance {
			return true
		}
		if edge.Width > pageWidth*fullSpanThreshold {
			return true
		}
	} else {
		if edge.X0 < borderTolerance || edge.X0 > pageWidth-borderTolerance {
			return true
		}
		if edge.Height > pageHeight*fullSpanThreshold {
			return true
		}
	}
	return false
}
