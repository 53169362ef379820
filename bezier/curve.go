// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package bezier evaluates Bezier curves and samples them into polylines
// whose consecutive points stay within a distance bound.

package bezier

import (
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
)

var (
	// ErrNeedsRefinement is returned by Points when two consecutive points
	// are farther apart than the requested bound.
	ErrNeedsRefinement = errors.New("bezier: needs refinement")
	// ErrComputationFailed is returned when adaptive sampling cannot meet
	// its bound above the minimum parametric range.
	ErrComputationFailed = errors.New("bezier: computation failed")
)

// Curve is an immutable Bezier curve. It is safe for concurrent use.
type Curve struct {
	controlPoints []r2.Point
	// weights[i] is C(n, i).
	weights []float64
}

// NewCurve returns the curve defined by the control points.
// It returns an error if fewer than two points are given.
func NewCurve(points ...r2.Point) (*Curve, error) {
	if len(points) < 2 {
		return nil, errors.Wrapf(geom.ErrInvalidArgument, "NewCurve: need at least 2 control points, got %d", len(points))
	}

	var b Binomial
	n := len(points) - 1
	weights := make([]float64, n+1)
	for i := range weights {
		weights[i] = b.Of(n, i)
	}
	return &Curve{
		controlPoints: slices.Clone(points),
		weights:       weights,
	}, nil
}

// Degree returns the number of control points minus one.
func (c *Curve) Degree() int {
	return len(c.controlPoints) - 1
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []r2.Point {
	return slices.Clone(c.controlPoints)
}

type PointsOptions struct {
	// MaxPointDifference bounds the distance between consecutive points.
	// +Inf means no bound.
	MaxPointDifference float64
}

type PointsOption func(*PointsOptions) error

func WithMaxPointDifference(d float64) PointsOption {
	return func(o *PointsOptions) error {
		if !(d >= 0) {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithMaxPointDifference: must be non-negative, got %v", d)
		}
		o.MaxPointDifference = d
		return nil
	}
}

// Points evaluates stepCount+1 points uniformly spaced over [tMin, tMax].
// With stepCount 0 it returns the single point at tMin. The last point is
// evaluated at exactly tMax.
//
// If a bound is set with WithMaxPointDifference and two consecutive points
// exceed it, Points returns ErrNeedsRefinement and no points.
func (c *Curve) Points(tMin, tMax float64, stepCount int, setters ...PointsOption) ([]r2.Point, error) {
	opts := PointsOptions{
		MaxPointDifference: math.Inf(1),
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	if err := validateRange(tMin, tMax, stepCount); err != nil {
		return nil, err
	}

	if stepCount == 0 {
		p, err := c.at(tMin)
		if err != nil {
			return nil, err
		}
		return []r2.Point{p}, nil
	}

	points := make([]r2.Point, stepCount+1)
	stepAmount := (tMax - tMin) / float64(stepCount)
	for step := range stepCount + 1 {
		t := tMin + float64(step)*stepAmount
		if step == stepCount {
			t = tMax
		}
		p, err := c.at(t)
		if err != nil {
			return nil, err
		}
		points[step] = p

		if step > 0 && geom.Distance(points[step-1], p) > opts.MaxPointDifference {
			return nil, errors.Wrapf(ErrNeedsRefinement, "[%v, %v] with %d steps", tMin, tMax, stepCount)
		}
	}
	return points, nil
}

// at evaluates B(t) = sum C(n,i) t^i (1-t)^(n-i) P_i.
func (c *Curve) at(t float64) (r2.Point, error) {
	n := c.Degree()
	var res r2.Point
	for i, p := range c.controlPoints {
		scale := c.weights[i] * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
		if scale < 0 || p.X < 0 || p.Y < 0 {
			return r2.Point{}, errors.Wrapf(geom.ErrInvalidArgument,
				"invalid scale %v or control point %v at t=%v", scale, p, t)
		}
		res = res.Add(p.Mul(scale))
	}
	return res, nil
}

func validateRange(tMin, tMax float64, stepCount int) error {
	switch {
	case !(tMin >= 0):
		return errors.Wrapf(geom.ErrInvalidArgument, "tMin must be >= 0, got %v", tMin)
	case !(tMax <= 1):
		return errors.Wrapf(geom.ErrInvalidArgument, "tMax must be <= 1, got %v", tMax)
	case tMin > tMax:
		return errors.Wrapf(geom.ErrInvalidArgument, "tMin %v is greater than tMax %v", tMin, tMax)
	case stepCount < 0:
		return errors.Wrapf(geom.ErrInvalidArgument, "stepCount must be >= 0, got %d", stepCount)
	}
	return nil
}

func (c *Curve) String() string {
	return fmt.Sprintf("Curve{%v}", c.controlPoints)
}
