// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"fmt"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Triangle is a canonically ordered triple of non-collinear points.
// P1 is the smallest point by Compare and Orientation(P1, P2, P3) < 0, which is
// counter-clockwise on a canvas whose y axis points down. Two triangles over
// the same points are == regardless of the order they were built from.
type Triangle struct {
	P1, P2, P3 r2.Point
}

// NewTriangle returns the canonical triangle over a, b and c.
// It returns ErrCollinear if the points do not span a triangle.
func NewTriangle(a, b, c r2.Point) (Triangle, error) {
	p := [3]r2.Point{a, b, c}
	slices.SortFunc(p[:], Compare)
	o := Orientation(p[0], p[1], p[2])
	switch {
	case o == 0:
		return Triangle{}, errors.Wrapf(ErrCollinear, "triangle (%v, %v, %v)", a, b, c)
	case o < 0:
		return Triangle{P1: p[0], P2: p[1], P3: p[2]}, nil
	}
	return Triangle{P1: p[0], P2: p[2], P3: p[1]}, nil
}

// Points returns the vertices in canonical order.
func (t Triangle) Points() [3]r2.Point {
	return [3]r2.Point{t.P1, t.P2, t.P3}
}

// HasVertex reports whether p is one of the vertices.
func (t Triangle) HasVertex(p r2.Point) bool {
	return p == t.P1 || p == t.P2 || p == t.P3
}

func (t Triangle) edgeOrientations(p r2.Point) (float64, float64, float64) {
	return Orientation(t.P1, t.P2, p), Orientation(t.P2, t.P3, p), Orientation(t.P3, t.P1, p)
}

// Contains reports whether p lies inside the triangle or on its boundary.
// A point on a shared edge is contained by both triangles sharing it.
func (t Triangle) Contains(p r2.Point) bool {
	d1, d2, d3 := t.edgeOrientations(p)
	return d1 <= 0 && d2 <= 0 && d3 <= 0 ||
		d1 >= 0 && d2 >= 0 && d3 >= 0
}

// ContainsPointOnEdge reports whether p is collinear with any edge.
func (t Triangle) ContainsPointOnEdge(p r2.Point) bool {
	return t.EdgeContaining(p) >= 0
}

// EdgeContaining returns i such that p is collinear with the edge from vertex
// i to vertex i+1 (mod 3), or -1 if there is none.
func (t Triangle) EdgeContaining(p r2.Point) int {
	d1, d2, d3 := t.edgeOrientations(p)
	switch {
	case d1 == 0:
		return 0
	case d2 == 0:
		return 1
	case d3 == 0:
		return 2
	}
	return -1
}

// ContainsPointInCircle reports whether p lies strictly inside the
// circumcircle. Lischinski, "Incremental Delaunay Triangulation", 1993.
func (t Triangle) ContainsPointInCircle(p r2.Point) bool {
	return inCircle(t.P1, t.P2, t.P3, p) < 0
}

// inCircle is positive when d is inside the circle through a, b, c for a
// triple with positive orientation and negative for one with negative
// orientation.
func inCircle(a, b, c, d r2.Point) float64 {
	return a.Dot(a)*Orientation(b, c, d) -
		b.Dot(b)*Orientation(a, c, d) +
		c.Dot(c)*Orientation(a, b, d) -
		d.Dot(d)*Orientation(a, b, c)
}

// CircumcircleCenter returns the point equidistant from all three vertices.
func (t Triangle) CircumcircleCenter() (r2.Point, error) {
	b1 := BisectorLine(t.P1, t.P2)
	b2 := BisectorLine(t.P2, t.P3)
	c, err := b1.Intersection(b2)
	if err != nil {
		return r2.Point{}, errors.Wrapf(err, "circumcenter of %v", t)
	}
	return c, nil
}

// SharedPoints returns the vertices of t that are also vertices of o,
// in t's canonical order.
func (t Triangle) SharedPoints(o Triangle) []r2.Point {
	var shared []r2.Point
	for _, p := range t.Points() {
		if o.HasVertex(p) {
			shared = append(shared, p)
		}
	}
	return shared
}

func (t Triangle) String() string {
	return fmt.Sprintf("Triangle{p1=%v, p2=%v, p3=%v}", t.P1, t.P2, t.P3)
}
