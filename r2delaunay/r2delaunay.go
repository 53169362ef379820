// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes planar Delaunay triangulations by incremental
// insertion with edge flipping (Lischinski 1993).

package r2delaunay

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
	"github.com/2dChan/r2voronoi/progress"
)

const (
	// frameMargin scales the distance between the bounds and the frame
	// corners. It keeps every frame corner farther from any point of the
	// bounds than any site is.
	frameMargin = 3.0

	numFrameVertices = 4
)

// ErrNotConverged is returned when edge flipping fails to settle, which only
// happens when rounding makes the in-circle predicate inconsistent.
var ErrNotConverged = errors.New("r2delaunay: edge flipping did not converge")

type Triangulation struct {
	// Vertices holds the unique sites in input order followed by the four
	// corners of the frame enclosing them.
	Vertices []r2.Point
	NumSites int
	// InputIndices maps every input point to its index in Vertices.
	// Duplicated input points share an index.
	InputIndices []int
	Bounds       r2.Rect

	// NOTE: Vertex order matches geom.Triangle, Orientation < 0.
	Triangles [][3]int
	// Neighbors[t][j] is the triangle across the edge from Triangles[t][j] to
	// Triangles[t][(j+1)%3], or -1 on the frame boundary.
	Neighbors [][3]int
	// NOTE: Sorted per vertex in the rotational sense of the triangles.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Triangle returns triangle tIdx as a geom.Triangle.
func (dt *Triangulation) Triangle(tIdx int) geom.Triangle {
	a, b, c := dt.TriangleVertices(tIdx)
	// Stored triangles are canonical already.
	return geom.Triangle{P1: a, P2: b, P3: c}
}

// IsFrameVertex reports whether vIdx is one of the frame corners.
func (dt *Triangulation) IsFrameVertex(vIdx int) bool {
	return vIdx >= dt.NumSites
}

// SiteTriangles returns the indices of the triangles whose three vertices are
// all sites.
func (dt *Triangulation) SiteTriangles() []int {
	var res []int
	for i, t := range dt.Triangles {
		if !dt.IsFrameVertex(t[0]) && !dt.IsFrameVertex(t[1]) && !dt.IsFrameVertex(t[2]) {
			res = append(res, i)
		}
	}
	return res
}

// Circumcenters returns the circumcircle centre of every triangle.
func (dt *Triangulation) Circumcenters() ([]r2.Point, error) {
	res := make([]r2.Point, len(dt.Triangles))
	for i := range dt.Triangles {
		c, err := dt.Triangle(i).CircumcircleCenter()
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}

// NewTriangulation triangulates points. Duplicated points are inserted once.
// It checks ctx before every insertion and returns ctx.Err() without a
// triangulation if it is done.
func NewTriangulation(ctx context.Context, points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Bounds:   r2.EmptyRect(),
		Progress: progress.Discard,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	if len(points) == 0 {
		return nil, errors.Wrap(geom.ErrInvalidArgument, "r2delaunay: no points to triangulate")
	}
	bounds := opts.Bounds
	if bounds.IsEmpty() {
		bounds = r2.RectFromPoints(points...)
	}
	for i, p := range points {
		if !bounds.ContainsPoint(p) {
			return nil, errors.Wrapf(geom.ErrInvalidArgument,
				"r2delaunay: point %d %v outside bounds %v", i, p, bounds)
		}
	}

	size := bounds.Size()
	margin := frameMargin * math.Max(size.X, size.Y)
	if margin == 0 {
		margin = frameMargin
	}
	b, err := newBuilder(bounds.ExpandedByMargin(margin), len(points))
	if err != nil {
		return nil, errors.Wrap(err, "r2delaunay: bootstrap frame")
	}

	inputIndices := make([]int, len(points))
	index := make(map[r2.Point]int, len(points))
	step := 1 / float64(len(points))
	for i, p := range points {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if v, ok := index[p]; ok {
			inputIndices[i] = v
			opts.Progress.Add(step)
			continue
		}
		v, err := b.insert(p)
		if err != nil {
			return nil, errors.Wrapf(err, "r2delaunay: point %d", i)
		}
		index[p] = v - numFrameVertices
		inputIndices[i] = index[p]
		opts.Progress.Add(step)
	}

	dt := b.compact()
	dt.InputIndices = inputIndices
	dt.Bounds = bounds
	return dt, nil
}

// compact turns the builder arena into an immutable Triangulation with the
// frame corners moved behind the sites.
func (b *builder) compact() *Triangulation {
	numVertices := len(b.vertices)
	numSites := numVertices - numFrameVertices
	remap := func(v int) int {
		if v < numFrameVertices {
			return numSites + v
		}
		return v - numFrameVertices
	}

	dt := &Triangulation{
		Vertices:                make([]r2.Point, numVertices),
		NumSites:                numSites,
		IncidentTriangleOffsets: make([]int, numVertices+1),
	}
	for v, p := range b.vertices {
		dt.Vertices[remap(v)] = p
	}

	slotIndex := make([]int, len(b.slots))
	for id, s := range b.slots {
		slotIndex[id] = -1
		if s.dead {
			continue
		}
		slotIndex[id] = len(dt.Triangles)
		dt.Triangles = append(dt.Triangles, [3]int{remap(s.v[0]), remap(s.v[1]), remap(s.v[2])})
	}

	numTriangles := len(dt.Triangles)
	dt.Neighbors = make([][3]int, numTriangles)
	dt.IncidentTriangleIndices = make([]int, numTriangles*3)
	for id, s := range b.slots {
		tIdx := slotIndex[id]
		if tIdx < 0 {
			continue
		}
		for j := range 3 {
			e := edge{from: s.v[j], to: s.v[(j+1)%3]}
			dt.Neighbors[tIdx][j] = -1
			if nb, ok := b.edges[e.twin()]; ok {
				dt.Neighbors[tIdx][j] = slotIndex[nb]
			}
		}
	}

	for _, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleOffsets[v+1]++
		}
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}
	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i, t := range dt.Triangles {
		for _, v := range t {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
	}
	for i := range numVertices {
		sortIncidentTriangleIndices(i, dt.IncidentTriangles(i), dt.Triangles)
	}

	return dt
}

// sortIncidentTriangleIndices orders the triangles around vIdx so that each
// one follows the triangle across the edge to its predecessor's previous
// vertex. Open fans start at the triangle without a predecessor.
func sortIncidentTriangleIndices(vIdx int, incidentTris []int, tris [][3]int) {
	n := len(incidentTris)
	for i, t := range incidentTris {
		nxt := NextVertex(tris[t], vIdx)
		hasPred := false
		for _, o := range incidentTris {
			if PrevVertex(tris[o], vIdx) == nxt {
				hasPred = true
				break
			}
		}
		if !hasPred {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		for j := i; j < n; j++ {
			if NextVertex(tris[incidentTris[j]], vIdx) == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				break
			}
		}
	}
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}
