// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package geom provides the planar predicates and shapes the triangulation,
// Voronoi and Bezier code is built on.

package geom

import (
	"cmp"
	"math"
	"math/big"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidArgument is wrapped by every construction failure in this module.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCollinear is returned when three points do not span a triangle.
	ErrCollinear = errors.Wrap(ErrInvalidArgument, "points are collinear")
	// ErrParallel is returned when two lines have no single intersection point.
	ErrParallel = errors.New("lines are parallel")
)

// orientationErrBound bounds the rounding error of the float64 determinant
// relative to the sum of the magnitudes of its two products.
const orientationErrBound = (3 + 16*0x1p-53) * 0x1p-53

// Orientation returns the signed determinant
// (b.x-a.x)(c.y-a.y) - (b.y-a.y)(c.x-a.x).
// Zero means the points are exactly collinear, the sign gives the turn
// direction.
//
// The operands are sorted by Compare first and the result negated for an odd
// permutation, so Orientation(a, b, c) == -Orientation(b, a, c) holds exactly.
// When the float64 determinant is too close to zero for its sign to be
// trusted it is recomputed exactly.
func Orientation(a, b, c r2.Point) float64 {
	neg := false
	if Less(b, a) {
		a, b = b, a
		neg = !neg
	}
	if Less(c, b) {
		b, c = c, b
		neg = !neg
		if Less(b, a) {
			a, b = b, a
			neg = !neg
		}
	}
	d := orientation(a, b, c)
	if neg {
		return -d
	}
	return d
}

func orientation(a, b, c r2.Point) float64 {
	l := (b.X - a.X) * (c.Y - a.Y)
	r := (b.Y - a.Y) * (c.X - a.X)
	d := l - r
	if math.IsNaN(d) || math.IsInf(d, 0) ||
		math.Abs(d) > orientationErrBound*(math.Abs(l)+math.Abs(r)) {
		return d
	}
	return exactOrientation(a, b, c)
}

// newBigFloat constructs a new big.Float with maximum precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func exactOrientation(a, b, c r2.Point) float64 {
	sub := func(x, y float64) *big.Float {
		return newBigFloat().Sub(newBigFloat().SetFloat64(x), newBigFloat().SetFloat64(y))
	}
	l := newBigFloat().Mul(sub(b.X, a.X), sub(c.Y, a.Y))
	r := newBigFloat().Mul(sub(b.Y, a.Y), sub(c.X, a.X))
	d, _ := newBigFloat().Sub(l, r).Float64()
	return d
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r2.Point) float64 {
	return a.Sub(b).Norm()
}

// Compare orders points lexicographically, x first then y.
func Compare(a, b r2.Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Less reports whether a sorts before b.
func Less(a, b r2.Point) bool {
	return Compare(a, b) < 0
}
