// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"context"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
	"github.com/2dChan/r2voronoi/progress"
	"github.com/2dChan/r2voronoi/r2delaunay"
)

// relativeEps is the default merge distance as a fraction of the larger
// side of the bounds.
const relativeEps = 1e-9

type DiagramOptions struct {
	// Eps is the distance under which consecutive cell vertices are merged.
	// Zero scales the distance with the bounds.
	Eps      float64
	Progress progress.Reporter
}

type DiagramOption func(*DiagramOptions) error

func WithEps(eps float64) DiagramOption {
	return func(o *DiagramOptions) error {
		if eps <= 0 || math.IsNaN(eps) {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithProgress reports triangulation and cell extraction as halves of the
// total work.
func WithProgress(r progress.Reporter) DiagramOption {
	return func(o *DiagramOptions) error {
		o.Progress = progress.OrDiscard(r)
		return nil
	}
}

type Diagram struct {
	// Sites holds the unique input points in input order.
	Sites  []r2.Point
	Bounds r2.Rect
	// SiteIndices maps every input point to its index in Sites.
	SiteIndices []int

	// NOTE: Sorted per cell with Orientation < 0, like geom.Triangle.
	Vertices    []r2.Point
	CellOffsets []int
	// NOTE: Sorted in the same rotational sense as Vertices.
	CellNeighbors   []int
	NeighborOffsets []int

	eps float64
}

// NewDiagram computes the Voronoi diagram of sites clipped to the rectangle
// [0,width]x[0,height]. Every site must lie inside the rectangle.
// It returns ctx.Err() and no diagram if ctx is done before completion.
func NewDiagram(ctx context.Context, sites []r2.Point, width, height float64, setters ...DiagramOption) (*Diagram, error) {
	if !(width >= 0 && height >= 0) {
		return nil, errors.Wrapf(geom.ErrInvalidArgument, "NewDiagram: invalid size %vx%v", width, height)
	}
	bounds := r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height})
	return newDiagram(ctx, sites, bounds, setters...)
}

func newDiagram(ctx context.Context, sites []r2.Point, bounds r2.Rect, setters ...DiagramOption) (*Diagram, error) {
	opts := DiagramOptions{
		Progress: progress.Discard,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if opts.Eps == 0 {
		size := bounds.Size()
		opts.Eps = relativeEps * math.Max(size.X, size.Y)
	}

	dt, err := r2delaunay.NewTriangulation(ctx, sites,
		r2delaunay.WithBounds(bounds),
		r2delaunay.WithProgress(progress.Scale(opts.Progress, 0.5)))
	if err != nil {
		return nil, err
	}

	centers, err := dt.Circumcenters()
	if err != nil {
		return nil, err
	}

	numSites := dt.NumSites
	vd := &Diagram{
		Sites:           slices.Clone(dt.Vertices[:numSites]),
		Bounds:          bounds,
		SiteIndices:     dt.InputIndices,
		Vertices:        make([]r2.Point, 0, 6*numSites),
		CellOffsets:     make([]int, 1, numSites+1),
		CellNeighbors:   make([]int, 0, 6*numSites),
		NeighborOffsets: make([]int, 1, numSites+1),
		eps:             opts.Eps,
	}

	step := 0.5 / float64(numSites)
	poly := make([]r2.Point, 0, 16)
	for vIdx := range numSites {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		it := dt.IncidentTriangles(vIdx)
		poly = poly[:0]
		for _, tIdx := range it {
			poly = append(poly, centers[tIdx])
		}
		poly = dedupe(clipToRect(poly, bounds), opts.Eps)
		vd.Vertices = append(vd.Vertices, poly...)
		vd.CellOffsets = append(vd.CellOffsets, len(vd.Vertices))

		for _, tIdx := range it {
			nb := r2delaunay.NextVertex(dt.Triangles[tIdx], vIdx)
			if !dt.IsFrameVertex(nb) {
				vd.CellNeighbors = append(vd.CellNeighbors, nb)
			}
		}
		vd.NeighborOffsets = append(vd.NeighborOffsets, len(vd.CellNeighbors))

		opts.Progress.Add(step)
	}

	return vd, nil
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

// Cell returns the cell of Sites[i].
// It returns an error if the index is out of range.
func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, errors.Wrapf(geom.ErrInvalidArgument, "Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

// CellMap returns every site's cell boundary keyed by the site.
func (vd *Diagram) CellMap() map[r2.Point][]r2.Point {
	res := make(map[r2.Point][]r2.Point, vd.NumCells())
	for i, s := range vd.Sites {
		res[s] = slices.Clone(vd.Vertices[vd.CellOffsets[i]:vd.CellOffsets[i+1]])
	}
	return res
}

// Relax applies steps rounds of Lloyd relaxation: every site moves to the
// centroid of its cell and the diagram is rebuilt. SiteIndices keeps
// mapping the original input points.
func (vd *Diagram) Relax(ctx context.Context, steps int) error {
	if steps < 0 {
		return errors.Wrapf(geom.ErrInvalidArgument, "Relax: negative steps %d", steps)
	}
	for range steps {
		sites := make([]r2.Point, vd.NumCells())
		for i := range sites {
			c := Cell{idx: i, d: vd}
			sites[i] = vd.Bounds.ClampPoint(c.Centroid())
		}

		next, err := newDiagram(ctx, sites, vd.Bounds, WithEps(vd.eps))
		if err != nil {
			return errors.Wrap(err, "Relax")
		}
		// Two centroids may coincide and be merged into one site.
		siteIndices := make([]int, len(vd.SiteIndices))
		for i, s := range vd.SiteIndices {
			siteIndices[i] = next.SiteIndices[s]
		}
		next.SiteIndices = siteIndices
		*vd = *next
	}
	return nil
}
