package pagegrid

import "math"

// snapEdges aligns near-duplicate edge coordinates. Each same-orientation
// pair whose defining coordinate differs by at most the tolerance has both
// coordinates replaced with their average. One sweep over pairs in index
// order; snapping is deliberately not transitive, so a chain A~B~C where A
// and C are farther apart than the tolerance does not fully collapse.
func snapEdges(edges []Edge, xTol, yTol float64) []Edge {
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			if edges[i].Orientation != edges[j].Orientation {
				continue
			}
			if edges[i].Orientation == OrientationV {
				if math.Abs(edges[i].X0-edges[j].X0) <= xTol {
					mid := (edges[i].X0 + edges[j].X0) / 2
					edges[i].X0, edges[i].X1 = mid, mid
					edges[j].X0, edges[j].X1 = mid, mid
				}
			} else {
				if math.Abs(edges[i].Top-edges[j].Top) <= yTol {
					mid := (edges[i].Top + edges[j].Top) / 2
					edges[i].Top, edges[i].Bottom = mid, mid
					edges[j].Top, edges[j].Bottom = mid, mid
				}
			}
		}
	}
	return edges
}

// joinEdges merges collinear same-orientation edges whose gap along the
// edge axis is within the tolerance. The later edge is absorbed into the
// earlier one by unioning extents. The scan restarts after every merge and
// the edge count strictly decreases, so the loop terminates; a second call
// on already-joined edges is a no-op.
func joinEdges(edges []Edge, xTol, yTol float64) []Edge {
	for {
		merged := false
	scan:
		for i := 0; i < len(edges); i++ {
			for j := i + 1; j < len(edges); j++ {
				if !joinable(edges[i], edges[j], xTol, yTol) {
					continue
				}
				edges[i] = unionEdges(edges[i], edges[j])
				edges = append(edges[:j], edges[j+1:]...)
				merged = true
				break scan
			}
		}
		if !merged {
			return edges
		}
	}
}

func joinable(a, b Edge, xTol, yTol float64) bool {
	if a.Orientation != b.Orientation {
		return false
	}
	if a.Orientation == OrientationV {
		if math.Abs(a.X0-b.X0) > xTol {
			return false
		}
		// Gap along y; negative when the extents overlap.
		gap := math.Max(a.Top, b.Top) - math.Min(a.Bottom, b.Bottom)
		return gap <= yTol
	}
	if math.Abs(a.Top-b.Top) > yTol {
		return false
	}
	gap := math.Max(a.X0, b.X0) - math.Min(a.X1, b.X1)
	return gap <= xTol
}

func unionEdges(a, b Edge) Edge {
	a.X0 = math.Min(a.X0, b.X0)
	a.X1 = math.Max(a.X1, b.X1)
	a.Top = math.Min(a.Top, b.Top)
	a.Bottom = math.Max(a.Bottom, b.Bottom)
	a.Width = a.X1 - a.X0
	a.Height = a.Bottom - a.Top
	if a.Source != b.Source {
		a.Source = EdgeSourceText
	}
	return a
}

// filterEdgesByLength drops edges shorter than minLength along their own
// orientation.
func filterEdgesByLength(edges []Edge, minLength float64) []Edge {
	if minLength <= 0 {
		return edges
	}
	kept := edges[:0]
	for _, e := range edges {
		if e.length() >= minLength {
			kept = append(kept, e)
		}
	}
	return kept
}
