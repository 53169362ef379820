// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/geom"
)

// clipToRect clips a convex polygon to r (Sutherland-Hodgman).
// The input slice is not modified.
func clipToRect(poly []r2.Point, r r2.Rect) []r2.Point {
	out := poly
	out = clipEdge(out, func(p r2.Point) bool { return p.X >= r.X.Lo }, func(a, b r2.Point) r2.Point {
		return crossX(a, b, r.X.Lo)
	})
	out = clipEdge(out, func(p r2.Point) bool { return p.X <= r.X.Hi }, func(a, b r2.Point) r2.Point {
		return crossX(a, b, r.X.Hi)
	})
	out = clipEdge(out, func(p r2.Point) bool { return p.Y >= r.Y.Lo }, func(a, b r2.Point) r2.Point {
		return crossY(a, b, r.Y.Lo)
	})
	out = clipEdge(out, func(p r2.Point) bool { return p.Y <= r.Y.Hi }, func(a, b r2.Point) r2.Point {
		return crossY(a, b, r.Y.Hi)
	})
	return out
}

func clipEdge(poly []r2.Point, inside func(r2.Point) bool, cross func(a, b r2.Point) r2.Point) []r2.Point {
	if len(poly) == 0 {
		return nil
	}
	out := make([]r2.Point, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	for _, cur := range poly {
		switch {
		case inside(cur) && inside(prev):
			out = append(out, cur)
		case inside(cur):
			out = append(out, cross(prev, cur), cur)
		case inside(prev):
			out = append(out, cross(prev, cur))
		}
		prev = cur
	}
	return out
}

// crossX returns the point of segment ab with X == x. The endpoints lie on
// opposite sides of the line.
func crossX(a, b r2.Point, x float64) r2.Point {
	t := (x - a.X) / (b.X - a.X)
	return r2.Point{X: x, Y: a.Y + t*(b.Y-a.Y)}
}

func crossY(a, b r2.Point, y float64) r2.Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return r2.Point{X: a.X + t*(b.X-a.X), Y: y}
}

// dedupe drops points closer than eps to their predecessor, including the
// last point against the first.
func dedupe(poly []r2.Point, eps float64) []r2.Point {
	out := poly[:0:0]
	for _, p := range poly {
		if len(out) > 0 && geom.Distance(out[len(out)-1], p) <= eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && geom.Distance(out[len(out)-1], out[0]) <= eps {
		out = out[:len(out)-1]
	}
	return out
}
