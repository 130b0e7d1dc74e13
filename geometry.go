package pagegrid

import (
	"math"
	"sort"
)

// Rect represents a bounding box with the origin at the top-left of the page.
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// IsEmpty reports whether the rectangle has no positive extent.
func (r Rect) IsEmpty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Point is an (x, y) location, typically where two edges cross.
type Point struct {
	X float64
	Y float64
}

// mergeRects merges two rectangles into their bounding box.
func mergeRects(r1, r2 Rect) Rect {
	return Rect{
		X0: math.Min(r1.X0, r2.X0),
		Y0: math.Min(r1.Y0, r2.Y0),
		X1: math.Max(r1.X1, r2.X1),
		Y1: math.Max(r1.Y1, r2.Y1),
	}
}

// intersectRects returns the intersection of two rectangles. The result is
// empty when they do not overlap.
func intersectRects(r1, r2 Rect) Rect {
	return Rect{
		X0: math.Max(r1.X0, r2.X0),
		Y0: math.Max(r1.Y0, r2.Y0),
		X1: math.Min(r1.X1, r2.X1),
		Y1: math.Min(r1.Y1, r2.Y1),
	}
}

// overlapRatio computes the 1-D overlap of [a0,a1] and [b0,b1] relative to
// the shorter span.
func overlapRatio(a0, a1, b0, b1 float64) float64 {
	overlap := math.Max(0, math.Min(a1, b1)-math.Max(a0, b0))
	minSpan := math.Min(a1-a0, b1-b0)
	if minSpan <= 0 {
		return 0
	}
	return overlap / minSpan
}

// calculateMedian calculates the median value of a float64 slice.
func calculateMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
