// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package progress defines how long-running computations report the fraction
// of work they have completed.

package progress

import (
	"go.uber.org/atomic"
)

// Reporter receives progress increments. The increments of one successful
// computation sum to 1.
type Reporter interface {
	Add(delta float64)
}

// Func adapts a function to a Reporter.
type Func func(delta float64)

// Add calls f(delta).
func (f Func) Add(delta float64) {
	f(delta)
}

type discard struct{}

func (discard) Add(float64) {}

// Discard is a Reporter that drops every increment.
var Discard Reporter = discard{}

type scaled struct {
	r      Reporter
	factor float64
}

func (s scaled) Add(delta float64) {
	s.r.Add(delta * s.factor)
}

// Scale returns a Reporter that forwards factor*delta to r.
// It is used to give sub-computations a share of a parent's progress.
func Scale(r Reporter, factor float64) Reporter {
	if r == nil {
		return Discard
	}
	return scaled{r: r, factor: factor}
}

// OrDiscard returns r, or Discard if r is nil.
func OrDiscard(r Reporter) Reporter {
	if r == nil {
		return Discard
	}
	return r
}

// Tracker accumulates increments and is safe for concurrent use.
type Tracker struct {
	total atomic.Float64
}

// Add adds delta to the running total.
func (t *Tracker) Add(delta float64) {
	t.total.Add(delta)
}

// Fraction returns the accumulated progress clamped to [0, 1].
func (t *Tracker) Fraction() float64 {
	return min(max(t.total.Load(), 0), 1)
}
