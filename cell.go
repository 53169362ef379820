// Package r2voronoi implements planar Voronoi diagrams clipped to a canvas
// rectangle, built on Delaunay triangulation.

package r2voronoi

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// NumVertices returns the number of vertices of the clipped cell polygon.
// Unlike on the sphere, this differs from the number of neighbors for cells
// touching the bounds.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// Vertices returns the cell polygon, sorted with the rotational sense of
// geom.Triangle. The polygon is closed implicitly.
func (c Cell) Vertices() []r2.Point {
	return c.d.Vertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, errors.Wrapf(geom.ErrInvalidArgument, "Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[start+i], nil
}

// NumNeighbors returns the number of neighboring cells.
func (c Cell) NumNeighbors() int {
	return c.d.NeighborOffsets[c.idx+1] - c.d.NeighborOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.NeighborOffsets[c.idx]:c.d.NeighborOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.NeighborOffsets[c.idx]
	end := c.d.NeighborOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, errors.Wrapf(geom.ErrInvalidArgument, "Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Cell(c.d.CellNeighbors[start+i])
}

// ContainsPoint reports whether p is inside the cell or on its boundary.
func (c Cell) ContainsPoint(p r2.Point) bool {
	v := c.Vertices()
	n := len(v)
	if n < 3 {
		return false
	}
	neg, pos := false, false
	for i := range n {
		o := geom.Orientation(v[i], v[(i+1)%n], p)
		neg = neg || o < 0
		pos = pos || o > 0
		if neg && pos {
			return false
		}
	}
	return true
}

// Area returns the unsigned area of the cell polygon.
func (c Cell) Area() float64 {
	return math.Abs(signedArea(c.Vertices()))
}

// Centroid returns the centroid of the cell polygon, or the site if the
// polygon has no area.
func (c Cell) Centroid() r2.Point {
	v := c.Vertices()
	a := signedArea(v)
	if a == 0 {
		return c.Site()
	}
	var cx, cy float64
	n := len(v)
	for i := range n {
		p, q := v[i], v[(i+1)%n]
		cross := p.Cross(q)
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	return r2.Point{X: cx / (6 * a), Y: cy / (6 * a)}
}

func signedArea(v []r2.Point) float64 {
	var s float64
	n := len(v)
	for i := range n {
		s += v[i].Cross(v[(i+1)%n])
	}
	return s / 2
}
