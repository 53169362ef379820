// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package progress

import (
	"sync"
	"testing"
)

func TestFunc(t *testing.T) {
	var got []float64
	r := Func(func(d float64) { got = append(got, d) })
	r.Add(0.25)
	r.Add(0.5)
	if len(got) != 2 || got[0] != 0.25 || got[1] != 0.5 {
		t.Errorf("Func recorded %v, want [0.25 0.5]", got)
	}
}

func TestScale(t *testing.T) {
	var tr Tracker
	r := Scale(&tr, 0.5)
	r.Add(0.5)
	r.Add(0.5)
	if got := tr.Fraction(); got != 0.5 {
		t.Errorf("tr.Fraction() = %v, want 0.5", got)
	}

	// A nil parent must not panic.
	Scale(nil, 0.5).Add(1)
	OrDiscard(nil).Add(1)
}

func TestTracker_Clamp(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"partial", []float64{0.125, 0.125}, 0.25},
		{"overflow", []float64{0.75, 0.75}, 1},
		{"negative", []float64{-1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Tracker
			for _, d := range tt.deltas {
				tr.Add(d)
			}
			if got := tr.Fraction(); got != tt.want {
				t.Errorf("tr.Fraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTracker_Concurrent(t *testing.T) {
	const n = 64
	var tr Tracker
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(1.0 / n)
		}()
	}
	wg.Wait()
	if got := tr.Fraction(); got != 1 {
		t.Errorf("tr.Fraction() = %v, want 1", got)
	}
}
