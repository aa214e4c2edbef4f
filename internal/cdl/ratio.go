package cdl

import "math"

// CandleRatio - тип для выбора соотношения между свечами
type CandleRatio string

// Константы соотношений между свечами
const (
	TrueRangeRatio CandleRatio = "TRR" // Истинный диапазон (max(H-L, |H-PrevC|, |L-PrevC|))
)

// ListOfCandleRatio возвращает список соотношений между свечами с заданным сдвигом.
// Для первых shift свечей предыдущей свечи нет и соотношение вычисляется без нее.
func ListOfCandleRatio(candles []Candle, r CandleRatio, shift int) []float64 {
	if shift == 0 {
		panic("shift не может быть 0")
	}

	ratios := make([]float64, len(candles))
	for i := range candles {
		if i < shift {
			ratios[i] = candles[i].Ratio(r, nil)
			continue
		}
		ratios[i] = candles[i].Ratio(r, &candles[i-shift])
	}
	return ratios
}

// Ratio вычисляет соотношение между текущей и предыдущей свечой.
// Без предыдущей свечи истинный диапазон вырождается в H-L.
func (c *Candle) Ratio(r CandleRatio, pc *Candle) float64 {
	switch r {
	case TrueRangeRatio:
		if pc == nil {
			return c.Arg(TrueRange)
		}
		return max(c.Arg(TrueRange), math.Abs(c.H-pc.C), math.Abs(c.L-pc.C))
	}
	return 0
}
