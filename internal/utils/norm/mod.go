package norm

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// PctDeviation возвращает отклонение s от base в процентах: (s-base)/base*100.
// При base[i]==0 значение не определено (NaN).
func PctDeviation[V Number](s []V, base []V) []float64 {
	n := len(s)
	if n != len(base) {
		panic("slice lengths do not match")
	}
	deviations := make([]float64, n)
	for i := 0; i < n; i++ {
		b := float64(base[i])
		if b == 0 {
			deviations[i] = math.NaN()
			continue
		}
		deviations[i] = (float64(s[i]) - b) / b * 100
	}
	return deviations
}

// PctRatio возвращает отношение s к base в процентах: s/base*100.
// При base[i]==0 значение не определено (NaN).
func PctRatio[V Number](s []V, base []V) []float64 {
	n := len(s)
	if n != len(base) {
		panic("slice lengths do not match")
	}
	ratios := make([]float64, n)
	for i := 0; i < n; i++ {
		b := float64(base[i])
		if b == 0 {
			ratios[i] = math.NaN()
			continue
		}
		ratios[i] = float64(s[i]) / b * 100
	}
	return ratios
}
