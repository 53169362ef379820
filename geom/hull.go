// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"slices"

	"github.com/golang/geo/r2"
)

// ConvexHull returns the vertices of the convex hull of points with the same
// rotational sense as Triangle (Orientation < 0), starting at the
// lexicographically smallest point. Collinear boundary points are dropped.
func ConvexHull(points []r2.Point) []r2.Point {
	ps := slices.Clone(points)
	slices.SortFunc(ps, Compare)
	ps = slices.Compact(ps)
	if len(ps) < 3 {
		return ps
	}

	// Monotone chain: upper hull left to right, then lower hull right to left.
	hull := make([]r2.Point, 0, len(ps)+1)
	for _, p := range ps {
		for len(hull) >= 2 && Orientation(hull[len(hull)-2], hull[len(hull)-1], p) >= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	upper := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= upper && Orientation(hull[len(hull)-2], hull[len(hull)-1], p) >= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
