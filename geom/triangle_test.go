// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package geom

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

func TestNewTriangle_Collinear(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
	}{
		{"diagonal", r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1}, r2.Point{X: 2, Y: 2}},
		{"horizontal", r2.Point{X: 5, Y: 1}, r2.Point{X: 0, Y: 1}, r2.Point{X: 9, Y: 1}},
		{"duplicate vertex", r2.Point{X: 1, Y: 2}, r2.Point{X: 1, Y: 2}, r2.Point{X: 3, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTriangle(tt.a, tt.b, tt.c)
			if err == nil {
				t.Fatalf("NewTriangle(%v, %v, %v) error = nil, want non-nil", tt.a, tt.b, tt.c)
			}
			if !errors.Is(err, ErrCollinear) || !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewTriangle(...) error = %v, want ErrCollinear wrapping ErrInvalidArgument", err)
			}
			if got != (Triangle{}) {
				t.Errorf("NewTriangle(...) = %v, want zero value", got)
			}
		})
	}
}

func TestNewTriangle_Canonical(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 4, Y: 0}
	c := r2.Point{X: 2, Y: 4}
	want := Triangle{P1: a, P2: c, P3: b}

	perms := [][3]r2.Point{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}
	for _, p := range perms {
		got := mustNewTriangle(t, p[0], p[1], p[2])
		if got != want {
			t.Errorf("NewTriangle(%v, %v, %v) = %v, want %v", p[0], p[1], p[2], got, want)
		}
	}
}

func TestNewTriangle_NegativeOrientation(t *testing.T) {
	//nolint:gosec
	random := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		a := r2.Point{X: random.Float64() * 100, Y: random.Float64() * 100}
		b := r2.Point{X: random.Float64() * 100, Y: random.Float64() * 100}
		c := r2.Point{X: random.Float64() * 100, Y: random.Float64() * 100}
		tri, err := NewTriangle(a, b, c)
		if err != nil {
			continue
		}
		if o := Orientation(tri.P1, tri.P2, tri.P3); o >= 0 {
			t.Errorf("Orientation(%v) = %v, want < 0", tri, o)
		}
		if Less(tri.P2, tri.P1) || Less(tri.P3, tri.P1) {
			t.Errorf("%v: P1 is not the smallest vertex", tri)
		}
	}
}

// nearCollinear returns a triple whose third point is rounded onto the
// segment between the first two.
func nearCollinear(random *rand.Rand) (r2.Point, r2.Point, r2.Point) {
	a := r2.Point{X: random.Float64(), Y: random.Float64()}
	b := r2.Point{X: random.Float64() * 1e3, Y: random.Float64() * 1e3}
	return a, b, a.Add(b.Sub(a).Mul(random.Float64()))
}

func TestOrientation_Permutations(t *testing.T) {
	//nolint:gosec
	random := rand.New(rand.NewSource(1))
	for i := 0; i < 100000; i++ {
		a, b, c := nearCollinear(random)
		o := Orientation(a, b, c)
		for _, p := range [][3]r2.Point{{b, c, a}, {c, a, b}} {
			if got := Orientation(p[0], p[1], p[2]); got != o {
				t.Fatalf("Orientation(%v) = %v, want %v", p, got, o)
			}
		}
		for _, p := range [][3]r2.Point{{b, a, c}, {a, c, b}, {c, b, a}} {
			if got := Orientation(p[0], p[1], p[2]); got != -o {
				t.Fatalf("Orientation(%v) = %v, want %v", p, got, -o)
			}
		}
	}
}

func TestNewTriangle_NearCollinear(t *testing.T) {
	//nolint:gosec
	random := rand.New(rand.NewSource(2))
	for i := 0; i < 200000; i++ {
		a, b, c := nearCollinear(random)
		want, wantErr := NewTriangle(a, b, c)
		if wantErr == nil {
			if o := Orientation(want.P1, want.P2, want.P3); o >= 0 {
				t.Fatalf("Orientation(%v) = %v, want < 0", want, o)
			}
		} else if !errors.Is(wantErr, ErrCollinear) {
			t.Fatalf("NewTriangle(%v, %v, %v) error = %v, want ErrCollinear", a, b, c, wantErr)
		}

		for _, p := range [][3]r2.Point{{a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a}} {
			got, err := NewTriangle(p[0], p[1], p[2])
			if (err != nil) != (wantErr != nil) {
				t.Fatalf("NewTriangle(%v) error = %v, NewTriangle(%v, %v, %v) error = %v",
					p, err, a, b, c, wantErr)
			}
			if got != want {
				t.Fatalf("NewTriangle(%v) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestTriangle_Contains(t *testing.T) {
	tri := mustNewTriangle(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 0, Y: 4})
	tests := []struct {
		name       string
		p          r2.Point
		want       bool
		wantOnEdge bool
	}{
		{"interior", r2.Point{X: 1, Y: 1}, true, false},
		{"vertex", r2.Point{X: 4, Y: 0}, true, true},
		{"edge", r2.Point{X: 2, Y: 0}, true, true},
		{"hypotenuse", r2.Point{X: 2, Y: 2}, true, true},
		{"outside", r2.Point{X: 3, Y: 3}, false, false},
		{"outside collinear", r2.Point{X: 5, Y: 0}, false, true},
		{"negative", r2.Point{X: -1, Y: 1}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.Contains(tt.p); got != tt.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tri, tt.p, got, tt.want)
			}
			if got := tri.ContainsPointOnEdge(tt.p); got != tt.wantOnEdge {
				t.Errorf("%v.ContainsPointOnEdge(%v) = %v, want %v", tri, tt.p, got, tt.wantOnEdge)
			}
		})
	}
}

func TestTriangle_EdgeContaining(t *testing.T) {
	tri := mustNewTriangle(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 0, Y: 4})
	pts := tri.Points()
	for i := range 3 {
		mid := pts[i].Add(pts[(i+1)%3]).Mul(0.5)
		if got := tri.EdgeContaining(mid); got != i {
			t.Errorf("%v.EdgeContaining(%v) = %v, want %v", tri, mid, got, i)
		}
	}
	if got := tri.EdgeContaining(r2.Point{X: 1, Y: 1}); got != -1 {
		t.Errorf("%v.EdgeContaining((1,1)) = %v, want -1", tri, got)
	}
}

func TestTriangle_ContainsPointInCircle(t *testing.T) {
	// Circumcircle centre (2, 1.5), radius 2.5.
	tri := mustNewTriangle(t, r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 2, Y: 4})
	tests := []struct {
		name string
		p    r2.Point
		want bool
	}{
		{"centre", r2.Point{X: 2, Y: 1.5}, true},
		{"inside below edge", r2.Point{X: 2, Y: -0.9}, true},
		{"outside", r2.Point{X: 2, Y: -1.1}, false},
		{"on circle", r2.Point{X: 4, Y: 3}, false},
		{"vertex", r2.Point{X: 4, Y: 0}, false},
		{"far", r2.Point{X: 100, Y: 100}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tri.ContainsPointInCircle(tt.p); got != tt.want {
				t.Errorf("%v.ContainsPointInCircle(%v) = %v, want %v", tri, tt.p, got, tt.want)
			}
		})
	}
}

func TestTriangle_CircumcircleCenter(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r2.Point
		want    r2.Point
	}{
		{"isosceles", r2.Point{X: 0, Y: 0}, r2.Point{X: 4, Y: 0}, r2.Point{X: 2, Y: 4}, r2.Point{X: 2, Y: 1.5}},
		{"right angle", r2.Point{X: 0, Y: 0}, r2.Point{X: 10, Y: 0}, r2.Point{X: 10, Y: 10}, r2.Point{X: 5, Y: 5}},
		{"shifted", r2.Point{X: 101, Y: 50}, r2.Point{X: 99, Y: 50}, r2.Point{X: 100, Y: 51}, r2.Point{X: 100, Y: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := mustNewTriangle(t, tt.a, tt.b, tt.c)
			got, err := tri.CircumcircleCenter()
			if err != nil {
				t.Fatalf("%v.CircumcircleCenter() error = %v, want nil", tri, err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("%v.CircumcircleCenter() mismatch (-want +got):\n%s", tri, diff)
			}
		})
	}
}

func TestTriangle_SharedPoints(t *testing.T) {
	a := r2.Point{X: 0, Y: 0}
	b := r2.Point{X: 10, Y: 0}
	c := r2.Point{X: 10, Y: 10}
	d := r2.Point{X: 0, Y: 10}
	e := r2.Point{X: 20, Y: 20}
	abc := mustNewTriangle(t, a, b, c)

	tests := []struct {
		name  string
		other Triangle
		want  []r2.Point
	}{
		{"same", mustNewTriangle(t, c, a, b), []r2.Point{abc.P1, abc.P2, abc.P3}},
		{"edge", mustNewTriangle(t, a, c, d), []r2.Point{a, c}},
		{"vertex", mustNewTriangle(t, c, d, e), []r2.Point{c}},
		{"none", mustNewTriangle(t, d, e, r2.Point{X: 0, Y: 30}), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := abc.SharedPoints(tt.other)
			if diff := cmp.Diff(tt.want, got, cmpopts.SortSlices(Less), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("%v.SharedPoints(%v) mismatch (-want +got):\n%s", abc, tt.other, diff)
			}
		})
	}
}

func TestTriangle_MapKey(t *testing.T) {
	a := r2.Point{X: 1, Y: 1}
	b := r2.Point{X: 5, Y: 2}
	c := r2.Point{X: 3, Y: 7}
	seen := map[Triangle]int{}
	seen[mustNewTriangle(t, a, b, c)]++
	seen[mustNewTriangle(t, c, b, a)]++
	seen[mustNewTriangle(t, b, a, c)]++
	if len(seen) != 1 {
		t.Errorf("len(seen) = %v, want 1", len(seen))
	}
}

// Helpers

func mustNewTriangle(t *testing.T, a, b, c r2.Point) Triangle {
	t.Helper()
	tri, err := NewTriangle(a, b, c)
	if err != nil {
		t.Fatalf("NewTriangle(%v, %v, %v) error = %v, want nil", a, b, c, err)
	}
	return tri
}
