// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar points for
// triangulations, Voronoi diagrams and Bezier curves.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt random points uniformly inside bounds.
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, bounds r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	points := make([]r2.Point, cnt)

	for i := range cnt {
		points[i] = r2.Point{
			X: bounds.X.Lo + random.Float64()*bounds.X.Length(),
			Y: bounds.Y.Lo + random.Float64()*bounds.Y.Length(),
		}
	}

	return points
}

// Canvas returns the rectangle [0,width]x[0,height].
func Canvas(width, height float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height})
}
