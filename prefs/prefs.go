// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package prefs holds the named, typed user preferences of the drawing
// tools and the stores that persist them.

package prefs

import (
	"slices"
	"sync"

	"go.uber.org/multierr"
)

// Value is the set of types a preference may hold.
type Value interface {
	int | bool | float64
}

// Store persists preference values by name.
type Store interface {
	// Lookup returns the stored value and whether one exists.
	Lookup(name string) (any, bool)
	Set(name string, v any) error
	Delete(name string) error
}

// Preference is a named value with a default.
type Preference[T Value] struct {
	Name    string
	Default T
}

// New returns a preference and registers it for ResetAll. It is safe to call
// concurrently with ResetAll.
func New[T Value](name string, def T) Preference[T] {
	p := Preference[T]{Name: name, Default: def}
	registryMu.Lock()
	registry = append(registry, p)
	registryMu.Unlock()
	return p
}

// Get returns the stored value, or the default if none is stored or the
// stored value has another type. Stored integers are accepted for float64
// preferences.
func (p Preference[T]) Get(s Store) T {
	v, ok := s.Lookup(p.Name)
	if !ok {
		return p.Default
	}
	if t, ok := v.(T); ok {
		return t
	}
	if i, ok := v.(int); ok {
		if f, ok := any(float64(i)).(T); ok {
			return f
		}
	}
	return p.Default
}

func (p Preference[T]) Set(s Store, v T) error {
	return s.Set(p.Name, v)
}

// Reset removes the stored value so Get returns the default.
func (p Preference[T]) Reset(s Store) error {
	return s.Delete(p.Name)
}

type resetter interface {
	Reset(s Store) error
}

var (
	registryMu sync.Mutex
	registry   []resetter
)

func registered() []resetter {
	registryMu.Lock()
	defer registryMu.Unlock()
	return slices.Clone(registry)
}

var (
	PointRadius             = New("point_radius", 4)
	RandomPointCount        = New("random_point_count", 3)
	ConvexHullColor         = New("convex_hull_color", 0x7fff0000) // ARGB, transparent red
	DrawPoints              = New("draw_points", true)
	SmoothEdges             = New("smooth_edges", true)
	ColorVoronoiCellRegions = New("color_voronoi_cell_regions", true)
	ShowPointsLabel         = New("show_points_label", true)

	BezierStepCount          = New("bezier_step_count", 10)
	BezierMaxPointDifference = New("bezier_max_point_difference", 0.5)
)

// ResetAll resets every registered preference. It attempts all of them and
// returns the combined errors.
func ResetAll(s Store) error {
	var err error
	for _, p := range registered() {
		err = multierr.Append(err, p.Reset(s))
	}
	return err
}
