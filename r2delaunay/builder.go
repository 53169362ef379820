// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
)

// edge is a directed edge between two vertex indices.
type edge struct {
	from, to int
}

func (e edge) twin() edge {
	return edge{from: e.to, to: e.from}
}

type slot struct {
	v    [3]int // same cyclic order as tri
	tri  geom.Triangle
	dead bool
}

// builder owns the working state of one triangulation. Triangles live in an
// arena addressed by slot index; every live triangle registers its three
// directed edges so the triangle across an edge is the owner of its twin.
type builder struct {
	vertices []r2.Point
	slots    []slot
	edges    map[edge]int
}

func newBuilder(frame r2.Rect, capacity int) (*builder, error) {
	b := &builder{
		vertices: make([]r2.Point, 0, capacity+numFrameVertices),
		slots:    make([]slot, 0, 8*(capacity+1)),
		edges:    make(map[edge]int, 6*(capacity+numFrameVertices)),
	}
	corners := frame.Vertices()
	b.vertices = append(b.vertices, corners[:]...)
	if _, err := b.addTriangle(0, 1, 2); err != nil {
		return nil, err
	}
	if _, err := b.addTriangle(0, 2, 3); err != nil {
		return nil, err
	}
	return b, nil
}

// addTriangle stores the canonical triangle over vertices a, b and c.
func (b *builder) addTriangle(i, j, k int) (int, error) {
	tri, err := geom.NewTriangle(b.vertices[i], b.vertices[j], b.vertices[k])
	if err != nil {
		return -1, err
	}

	var v [3]int
	for n, p := range tri.Points() {
		switch p {
		case b.vertices[i]:
			v[n] = i
		case b.vertices[j]:
			v[n] = j
		default:
			v[n] = k
		}
	}

	id := len(b.slots)
	b.slots = append(b.slots, slot{v: v, tri: tri})
	for n := range 3 {
		b.edges[edge{from: v[n], to: v[(n+1)%3]}] = id
	}
	return id, nil
}

func (b *builder) removeTriangle(id int) {
	s := &b.slots[id]
	s.dead = true
	for n := range 3 {
		e := edge{from: s.v[n], to: s.v[(n+1)%3]}
		if b.edges[e] == id {
			delete(b.edges, e)
		}
	}
}

// opposite returns the vertex of slot id that is not on e.
func (b *builder) opposite(id int, e edge) int {
	for _, v := range b.slots[id].v {
		if v != e.from && v != e.to {
			return v
		}
	}
	panic("opposite: slot is degenerate")
}

// locate returns a live slot containing p, scanning newest first.
func (b *builder) locate(p r2.Point) int {
	for id := len(b.slots) - 1; id >= 0; id-- {
		if !b.slots[id].dead && b.slots[id].tri.Contains(p) {
			return id
		}
	}
	return -1
}

// insert adds p to the triangulation and returns its vertex index. A point
// that is already a vertex returns that vertex.
func (b *builder) insert(p r2.Point) (int, error) {
	loc := b.locate(p)
	if loc < 0 {
		return -1, errors.Wrapf(geom.ErrInvalidArgument, "point %v outside the frame", p)
	}
	s := b.slots[loc]
	for _, v := range s.v {
		if b.vertices[v] == p {
			return v, nil
		}
	}

	// The cavity is the containing triangle, plus the triangle across the edge
	// p lies on, so that no zero-area triangle is created.
	cavity := []int{loc}
	var boundary []edge
	onEdge := s.tri.EdgeContaining(p)
	for n := range 3 {
		e := edge{from: s.v[n], to: s.v[(n+1)%3]}
		if n != onEdge {
			boundary = append(boundary, e)
			continue
		}
		nb, ok := b.edges[e.twin()]
		if !ok {
			continue
		}
		cavity = append(cavity, nb)
		ns := b.slots[nb]
		for k := range 3 {
			if ne := (edge{from: ns.v[k], to: ns.v[(k+1)%3]}); ne != e.twin() {
				boundary = append(boundary, ne)
			}
		}
	}

	vIdx := len(b.vertices)
	b.vertices = append(b.vertices, p)
	for _, id := range cavity {
		b.removeTriangle(id)
	}
	for _, e := range boundary {
		if _, err := b.addTriangle(e.from, e.to, vIdx); err != nil {
			return -1, errors.Wrapf(err, "insert %v", p)
		}
	}

	return vIdx, b.legalize(vIdx, boundary)
}

// legalize flips edges opposite vIdx until every triangle around it
// satisfies the Delaunay condition.
func (b *builder) legalize(vIdx int, stack []edge) error {
	maxFlips := 8 * len(b.vertices)
	for flips := 0; len(stack) > 0; {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t, ok := b.edges[e]
		if !ok || b.opposite(t, e) != vIdx {
			continue
		}
		n, ok := b.edges[e.twin()]
		if !ok {
			continue
		}
		d := b.opposite(n, e.twin())
		if !b.slots[t].tri.ContainsPointInCircle(b.vertices[d]) {
			continue
		}

		// Only a convex quadrilateral can be flipped.
		pv, pd := b.vertices[vIdx], b.vertices[d]
		if geom.Orientation(b.vertices[e.from], pd, pv) >= 0 ||
			geom.Orientation(pd, b.vertices[e.to], pv) >= 0 {
			continue
		}

		flips++
		if flips > maxFlips {
			return errors.Wrapf(ErrNotConverged, "after %d flips around %v", maxFlips, pv)
		}

		b.removeTriangle(t)
		b.removeTriangle(n)
		if _, err := b.addTriangle(e.from, d, vIdx); err != nil {
			return err
		}
		if _, err := b.addTriangle(d, e.to, vIdx); err != nil {
			return err
		}
		stack = append(stack, edge{from: e.from, to: d}, edge{from: d, to: e.to})
	}
	return nil
}
