// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package bezier

import (
	"gonum.org/v1/gonum/stat/combin"
)

// exactLimit is the largest n for which every C(n, k) fits an int.
const exactLimit = 60

// Binomial memoizes binomial coefficients. The zero value is ready to use.
// It is not safe for concurrent use.
type Binomial struct {
	cache map[[2]int]float64
}

// Of returns C(n, k), or 0 when k is outside [0, n].
func (b *Binomial) Of(n, k int) float64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	key := [2]int{n, min(k, n-k)}
	if v, ok := b.cache[key]; ok {
		return v
	}
	var v float64
	if n <= exactLimit {
		v = float64(combin.Binomial(n, key[1]))
	} else {
		v = combin.GeneralizedBinomial(float64(n), float64(key[1]))
	}
	if b.cache == nil {
		b.cache = make(map[[2]int]float64)
	}
	b.cache[key] = v
	return v
}
