// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package bezier

import (
	"context"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
	"github.com/2dChan/r2voronoi/progress"
)

const (
	defaultStepCount     = 10
	defaultMaxDifference = 0.5
	defaultMinRange      = 1e-9
)

type SampleOptions struct {
	// StepCount is the number of steps evaluated per parametric range.
	StepCount int
	// MaxDifference bounds the distance between consecutive output points.
	MaxDifference float64
	// MinRange is the narrowest parametric range that may be subdivided.
	MinRange float64
	Progress progress.Reporter
}

type SampleOption func(*SampleOptions) error

func WithStepCount(n int) SampleOption {
	return func(o *SampleOptions) error {
		if n < 1 {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithStepCount: must be positive, got %d", n)
		}
		o.StepCount = n
		return nil
	}
}

func WithMaxDifference(d float64) SampleOption {
	return func(o *SampleOptions) error {
		if !(d >= 0) || math.IsInf(d, 1) {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithMaxDifference: must be finite and non-negative, got %v", d)
		}
		o.MaxDifference = d
		return nil
	}
}

func WithMinRange(r float64) SampleOption {
	return func(o *SampleOptions) error {
		if !(r > 0 && r <= 1) {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithMinRange: must be in (0, 1], got %v", r)
		}
		o.MinRange = r
		return nil
	}
}

// WithProgress reports the parametric share of every resolved range, so the
// increments of a successful run sum to 1.
func WithProgress(r progress.Reporter) SampleOption {
	return func(o *SampleOptions) error {
		o.Progress = progress.OrDiscard(r)
		return nil
	}
}

type span struct {
	tMin, tMax float64
	weight     float64
}

// Sample returns a polyline through the curve over [0, 1] whose consecutive
// points are at most MaxDifference apart. Ranges that need refinement are
// bisected until they meet the bound; the halves share their midpoint, which
// appears once in the result.
// It returns ctx.Err() and no points if ctx is done before completion.
func Sample(ctx context.Context, c *Curve, setters ...SampleOption) ([]r2.Point, error) {
	opts := SampleOptions{
		StepCount:     defaultStepCount,
		MaxDifference: defaultMaxDifference,
		MinRange:      defaultMinRange,
		Progress:      progress.Discard,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	var res []r2.Point
	// Spans are resolved left to right; the right half is pushed first.
	stack := []span{{tMin: 0, tMax: 1, weight: 1}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		points, err := c.Points(s.tMin, s.tMax, opts.StepCount, WithMaxPointDifference(opts.MaxDifference))
		switch {
		case err == nil:
		case errors.Is(err, ErrNeedsRefinement):
			if s.tMax-s.tMin < opts.MinRange {
				return nil, errors.Wrapf(ErrComputationFailed,
					"range [%v, %v] is below the minimum %v", s.tMin, s.tMax, opts.MinRange)
			}
			mid := (s.tMin + s.tMax) / 2
			stack = append(stack,
				span{tMin: mid, tMax: s.tMax, weight: s.weight / 2},
				span{tMin: s.tMin, tMax: mid, weight: s.weight / 2})
			continue
		default:
			return nil, err
		}

		if len(res) > 0 {
			if res[len(res)-1] != points[0] {
				return nil, errors.Wrapf(ErrComputationFailed,
					"discontinuity at t=%v: %v != %v", s.tMin, res[len(res)-1], points[0])
			}
			points = points[1:]
		}
		res = append(res, points...)
		opts.Progress.Add(s.weight)
	}
	return res, nil
}
