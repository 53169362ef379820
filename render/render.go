// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package render draws triangulations, Voronoi diagrams and sampled curves
// as SVG.

package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/geom"
	"github.com/2dChan/r2voronoi/prefs"
	"github.com/2dChan/r2voronoi/r2delaunay"
)

const (
	backgroundStyle = "fill:rgb(255,255,255)"
	strokeStyle     = "stroke:rgb(170,170,170);stroke-width:1"
	edgeStyle       = "fill:none;" + strokeStyle
	curveStyle      = "fill:none;stroke:rgb(0,0,200);stroke-width:2"
	controlStyle    = "fill:none;stroke:rgb(200,200,200);stroke-width:1;stroke-dasharray:4"
	labelStyle      = "font-family:monospace;font-size:10px;fill:rgb(60,60,60)"
)

// Style controls what is drawn and how.
type Style struct {
	PointRadius  int
	DrawPoints   bool
	SmoothEdges  bool
	ColorRegions bool
	ShowLabels   bool
	// HullColor is ARGB. A zero alpha disables the hull.
	HullColor uint32
}

// StyleFromPrefs reads the drawing preferences from s.
func StyleFromPrefs(s prefs.Store) Style {
	return Style{
		PointRadius:  prefs.PointRadius.Get(s),
		DrawPoints:   prefs.DrawPoints.Get(s),
		SmoothEdges:  prefs.SmoothEdges.Get(s),
		ColorRegions: prefs.ColorVoronoiCellRegions.Get(s),
		ShowLabels:   prefs.ShowPointsLabel.Get(s),
		HullColor:    uint32(prefs.ConvexHullColor.Get(s)), //nolint:gosec
	}
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func start(w io.Writer, width, height int, st Style) (*svg.SVG, *errWriter) {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, backgroundStyle)
	if st.SmoothEdges {
		canvas.Gstyle("shape-rendering:geometricPrecision")
	} else {
		canvas.Gstyle("shape-rendering:crispEdges")
	}
	return canvas, ew
}

func end(canvas *svg.SVG, ew *errWriter) error {
	canvas.Gend()
	canvas.End()
	return errors.Wrap(ew.err, "render")
}

func screen(p r2.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

func coords(points []r2.Point) ([]int, []int) {
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = screen(p)
	}
	return xs, ys
}

func drawHull(canvas *svg.SVG, points []r2.Point, st Style) {
	alpha := st.HullColor >> 24
	if alpha == 0 {
		return
	}
	hull := geom.ConvexHull(points)
	if len(hull) < 3 {
		return
	}
	r, g, b := int(st.HullColor>>16&0xff), int(st.HullColor>>8&0xff), int(st.HullColor&0xff)
	xs, ys := coords(hull)
	canvas.Polygon(xs, ys, fmt.Sprintf("fill:none;stroke:rgb(%d,%d,%d);stroke-opacity:%.2f;stroke-width:2",
		r, g, b, float64(alpha)/255))
}

func drawPoints(canvas *svg.SVG, points []r2.Point, st Style) {
	if !st.DrawPoints {
		return
	}
	for i, p := range points {
		x, y := screen(p)
		canvas.Circle(x, y, st.PointRadius, canvas.RGB(255, 0, 0))
		if st.ShowLabels {
			canvas.Text(x+st.PointRadius+2, y-st.PointRadius-2, strconv.Itoa(i), labelStyle)
		}
	}
}

// regionColor spreads cell colors over the hue circle.
func regionColor(canvas *svg.SVG, i int) string {
	const golden = 0.618033988749895
	h := math.Mod(float64(i)*golden, 1) * 6
	c := 0.45
	x := c * (1 - math.Abs(math.Mod(h, 2)-1))
	var r, g, b float64
	switch int(h) {
	case 0:
		r, g = c, x
	case 1:
		r, g = x, c
	case 2:
		g, b = c, x
	case 3:
		g, b = x, c
	case 4:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := 0.5
	return canvas.RGBA(int((r+m)*255), int((g+m)*255), int((b+m)*255), 0.6)
}

// Triangulation draws the triangles between sites of dt.
func Triangulation(w io.Writer, dt *r2delaunay.Triangulation, width, height int, st Style) error {
	canvas, ew := start(w, width, height, st)
	for _, tIdx := range dt.SiteTriangles() {
		a, b, c := dt.TriangleVertices(tIdx)
		xs, ys := coords([]r2.Point{a, b, c})
		canvas.Polygon(xs, ys, edgeStyle)
	}
	sites := dt.Vertices[:dt.NumSites]
	drawHull(canvas, sites, st)
	drawPoints(canvas, sites, st)
	return end(canvas, ew)
}

// Diagram draws the cells of vd on a canvas the size of its bounds.
func Diagram(w io.Writer, vd *r2voronoi.Diagram, st Style) error {
	width, height := int(math.Ceil(vd.Bounds.X.Hi)), int(math.Ceil(vd.Bounds.Y.Hi))
	canvas, ew := start(w, width, height, st)
	for i := range vd.NumCells() {
		c, err := vd.Cell(i)
		if err != nil {
			return err
		}
		if c.NumVertices() < 3 {
			continue
		}
		xs, ys := coords(c.Vertices())
		if st.ColorRegions {
			canvas.Polygon(xs, ys, regionColor(canvas, i)+";"+strokeStyle)
		} else {
			canvas.Polygon(xs, ys, edgeStyle)
		}
	}
	drawHull(canvas, vd.Sites, st)
	drawPoints(canvas, vd.Sites, st)
	return end(canvas, ew)
}

// Polyline draws a sampled curve over its dashed control polygon.
func Polyline(w io.Writer, points, controlPoints []r2.Point, width, height int, st Style) error {
	canvas, ew := start(w, width, height, st)
	if len(controlPoints) > 1 {
		xs, ys := coords(controlPoints)
		canvas.Polyline(xs, ys, controlStyle)
	}
	if len(points) > 1 {
		xs, ys := coords(points)
		canvas.Polyline(xs, ys, curveStyle)
	}
	drawPoints(canvas, controlPoints, st)
	return end(canvas, ew)
}

// WriteFile creates path and passes it to draw.
func WriteFile(path string, draw func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "WriteFile")
	}
	defer func() {
		err = multierr.Append(err, errors.Wrapf(f.Close(), "close %s", path))
	}()
	return draw(f)
}
