package pagegrid

import "math"

// intersectionEpsilon is the distance under which two computed crossing
// points are considered the same intersection.
const intersectionEpsilon = 0.1

// Intersection is a lattice point where vertical and horizontal edges
// cross, along with the edges that produced it. Points within
// intersectionEpsilon on both axes merge and union their edge sets.
type Intersection struct {
	Point  Point
	VEdges []Edge
	HEdges []Edge
}

// findIntersections computes the crossing lattice of the processed edge
// set. A vertical and horizontal edge intersect when the vertical extent
// straddles the horizontal's y within yTol and the horizontal extent
// straddles the vertical's x within xTol. O(V*H) over per-page edge counts
// in the hundreds.
func findIntersections(edges []Edge, xTol, yTol float64) []Intersection {
	var verticals, horizontals []Edge
	for _, e := range edges {
		if e.Orientation == OrientationV {
			verticals = append(verticals, e)
		} else {
			horizontals = append(horizontals, e)
		}
	}

	var points []Intersection
	for _, v := range verticals {
		for _, h := range horizontals {
			if v.Top-yTol > h.Top || v.Bottom+yTol < h.Top {
				continue
			}
			if h.X0-xTol > v.X0 || h.X1+xTol < v.X0 {
				continue
			}
			points = attachIntersection(points, Point{X: v.X0, Y: h.Top}, v, h)
		}
	}
	return points
}

func attachIntersection(points []Intersection, p Point, v, h Edge) []Intersection {
	for i := range points {
		if math.Abs(points[i].Point.X-p.X) <= intersectionEpsilon &&
			math.Abs(points[i].Point.Y-p.Y) <= intersectionEpsilon {
			points[i].VEdges = appendEdgeOnce(points[i].VEdges, v)
			points[i].HEdges = appendEdgeOnce(points[i].HEdges, h)
			return points
		}
	}
	return append(points, Intersection{
		Point:  p,
		VEdges: []Edge{v},
		HEdges: []Edge{h},
	})
}

func appendEdgeOnce(edges []Edge, e Edge) []Edge {
	for _, existing := range edges {
		if existing == e {
			return edges
		}
	}
	return append(edges, e)
}
