package numeric

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Sum возвращает сумму элементов слайса
func Sum[V Number](s []V) float64 {
	var sum float64
	for _, v := range s {
		sum += float64(v)
	}
	return sum
}

// Avg возвращает среднее арифметическое элементов слайса
func Avg[V Number](s []V) float64 {
	n := len(s)
	if n == 0 {
		return 0
	}
	return Sum(s) / float64(n)
}

// Diff возвращает разности соседних элементов.
// Первый элемент не имеет предыдущего и помечается как NaN.
func Diff(s []float64) []float64 {
	diffs := make([]float64, len(s))
	if len(s) == 0 {
		return diffs
	}
	diffs[0] = math.NaN()
	for i := 1; i < len(s); i++ {
		diffs[i] = s[i] - s[i-1]
	}
	return diffs
}

// RollingMean возвращает скользящее среднее с окном period.
// Первые period-1 значений не определены (NaN). Если окно содержит
// хотя бы один NaN, результат для этой позиции тоже NaN.
func RollingMean(s []float64, period int) []float64 {
	n := len(s)
	means := make([]float64, n)
	if period <= 0 {
		for i := range means {
			means[i] = math.NaN()
		}
		return means
	}

	var sum float64
	var nanCount int
	for i := 0; i < n; i++ {
		if math.IsNaN(s[i]) {
			nanCount++
		} else {
			sum += s[i]
		}
		if i >= period {
			if math.IsNaN(s[i-period]) {
				nanCount--
			} else {
				sum -= s[i-period]
			}
		}
		if i < period-1 || nanCount > 0 {
			means[i] = math.NaN()
			continue
		}
		means[i] = sum / float64(period)
	}
	return means
}
