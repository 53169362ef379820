// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Line is the parametric line Point + t*Direction.
type Line struct {
	Point     r2.Point
	Direction r2.Point
}

// LineThrough returns the line through a and b, with a at t=0 and b at t=1.
func LineThrough(a, b r2.Point) Line {
	return Line{Point: a, Direction: b.Sub(a)}
}

// BisectorLine returns the perpendicular bisector of the segment ab.
func BisectorLine(a, b r2.Point) Line {
	return Line{
		Point:     a.Add(b).Mul(0.5),
		Direction: b.Sub(a).Ortho(),
	}
}

// At returns the point at parameter t.
func (l Line) At(t float64) r2.Point {
	return l.Point.Add(l.Direction.Mul(t))
}

// Intersection returns the single point shared by l and o.
// It returns ErrParallel if the directions are parallel or either is zero.
func (l Line) Intersection(o Line) (r2.Point, error) {
	denom := l.Direction.Cross(o.Direction)
	if denom == 0 {
		return r2.Point{}, errors.Wrapf(ErrParallel, "intersect %v and %v", l, o)
	}
	t := o.Point.Sub(l.Point).Cross(o.Direction) / denom
	return l.At(t), nil
}

func (l Line) String() string {
	return fmt.Sprintf("Line{%v + t*%v}", l.Point, l.Direction)
}
