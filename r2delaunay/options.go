// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/2dChan/r2voronoi/geom"
	"github.com/2dChan/r2voronoi/progress"
)

type TriangulationOptions struct {
	// Bounds every point must lie in. An empty rectangle means the bounding
	// box of the points.
	Bounds   r2.Rect
	Progress progress.Reporter
}

type TriangulationOption func(*TriangulationOptions) error

func WithBounds(bounds r2.Rect) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if bounds.IsEmpty() {
			return errors.Wrapf(geom.ErrInvalidArgument, "WithBounds: empty rectangle %v", bounds)
		}
		o.Bounds = bounds
		return nil
	}
}

func WithProgress(r progress.Reporter) TriangulationOption {
	return func(o *TriangulationOptions) error {
		o.Progress = progress.OrDiscard(r)
		return nil
	}
}
