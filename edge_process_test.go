package pagegrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func vEdge(x, top, bottom float64) Edge {
	return Edge{X0: x, X1: x, Top: top, Bottom: bottom, Height: bottom - top, Orientation: OrientationV}
}

func hEdge(y, x0, x1 float64) Edge {
	return Edge{X0: x0, X1: x1, Top: y, Bottom: y, Width: x1 - x0, Orientation: OrientationH}
}

func TestSnapEdges_Convergence(t *testing.T) {
	edges := []Edge{
		vEdge(10.0, 0, 100),
		vEdge(10.4, 0, 100),
	}
	edges = snapEdges(edges, 0.5, 0.5)

	require.InDelta(t, 10.2, edges[0].X0, 1e-9)
	require.InDelta(t, 10.2, edges[1].X0, 1e-9)
	require.Equal(t, edges[0].X0, edges[0].X1)
	require.Equal(t, edges[1].X0, edges[1].X1)
}

func TestSnapEdges_NotTransitive(t *testing.T) {
	edges := []Edge{
		vEdge(10.0, 0, 100),
		vEdge(10.4, 0, 100),
		vEdge(10.8, 0, 100),
	}
	edges = snapEdges(edges, 0.5, 0.5)

	// The first pair averages to 10.2; the third edge is then out of
	// range of both and keeps its own coordinate.
	require.InDelta(t, 10.2, edges[0].X0, 1e-9)
	require.InDelta(t, 10.2, edges[1].X0, 1e-9)
	require.InDelta(t, 10.8, edges[2].X0, 1e-9)
}

func TestSnapEdges_IgnoresOtherOrientation(t *testing.T) {
	edges := []Edge{
		vEdge(10.0, 0, 100),
		hEdge(10.2, 0, 100),
	}
	edges = snapEdges(edges, 0.5, 0.5)

	require.Equal(t, 10.0, edges[0].X0)
	require.Equal(t, 10.2, edges[1].Top)
}

func TestJoinEdges_MergesCollinearWithinGap(t *testing.T) {
	edges := []Edge{
		hEdge(50, 0, 40),
		hEdge(50, 42, 100),
	}
	edges = joinEdges(edges, 3, 3)

	require.Len(t, edges, 1)
	require.Equal(t, 0.0, edges[0].X0)
	require.Equal(t, 100.0, edges[0].X1)
	require.Equal(t, 100.0, edges[0].Width)
}

func TestJoinEdges_KeepsDistantSegments(t *testing.T) {
	edges := []Edge{
		hEdge(50, 0, 40),
		hEdge(50, 60, 100),
	}
	edges = joinEdges(edges, 3, 3)
	require.Len(t, edges, 2)
}

func TestJoinEdges_Idempotent(t *testing.T) {
	edges := []Edge{
		hEdge(50, 0, 40),
		hEdge(50, 41, 80),
		hEdge(50.5, 81, 120),
		vEdge(10, 0, 30),
		vEdge(10, 31, 60),
	}
	once := joinEdges(append([]Edge(nil), edges...), 3, 3)
	twice := joinEdges(append([]Edge(nil), once...), 3, 3)

	require.Equal(t, once, twice)
}

func TestFilterEdgesByLength(t *testing.T) {
	edges := []Edge{
		hEdge(10, 0, 2),
		hEdge(20, 0, 50),
		vEdge(5, 0, 1),
		vEdge(5, 0, 40),
	}
	kept := filterEdgesByLength(edges, 3)

	require.Len(t, kept, 2)
	require.Equal(t, 50.0, kept[0].X1)
	require.Equal(t, 40.0, kept[1].Bottom)
}
