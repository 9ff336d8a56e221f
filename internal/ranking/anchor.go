package ranking

import "slices"

// Point is a map coordinate in the provider's projection.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointOf reads a candidate's coordinates; unparsable values count as zero.
func PointOf(p PlaceCandidate) Point {
	return Point{X: coord(p.MapX), Y: coord(p.MapY)}
}

// IsZero is true for the origin, which the provider uses for unknown coordinates.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

func dist2(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// ReorderByAnchor sorts places by squared distance to anchor, nearest first.
// Nothing is dropped; a nil anchor keeps the given order.
func ReorderByAnchor(places []PlaceCandidate, anchor *Point) []PlaceCandidate {
	out := slices.Clone(places)
	if anchor == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b PlaceCandidate) int {
		da := dist2(PointOf(a), *anchor)
		db := dist2(PointOf(b), *anchor)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}
