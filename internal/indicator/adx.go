package indicator

import (
	"math"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/utils/numeric"
)

// ComputeADX возвращает индекс среднего направленного движения.
// Истинный диапазон и направленные движения +DM/-DM сглаживаются
// скользящим средним за period, DI выражаются в процентах от ATR,
// DX = 100*|+DI - -DI|/(+DI + -DI), ADX - скользящее среднее DX.
// Нулевой ATR дает нулевые DI, нулевая сумма DI - нулевой DX.
// Прогрев завершается на строке 2*(period-1).
func ComputeADX(candles []cdl.Candle, period int) []float64 {
	n := len(candles)
	tr := cdl.ListOfCandleRatio(candles, cdl.TrueRangeRatio, 1)
	atr := numeric.RollingMean(tr, period)

	// +DM и -DM первой свечи нулевые: сравнивать не с чем
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := candles[i].H - candles[i-1].H
		down := candles[i-1].L - candles[i].L
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
	}
	avgPlusDM := numeric.RollingMean(plusDM, period)
	avgMinusDM := numeric.RollingMean(minusDM, period)

	dx := make([]float64, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) || math.IsNaN(avgPlusDM[i]) || math.IsNaN(avgMinusDM[i]) {
			dx[i] = math.NaN()
			continue
		}
		var plusDI, minusDI float64
		if atr[i] != 0 {
			plusDI = 100 * avgPlusDM[i] / atr[i]
			minusDI = 100 * avgMinusDM[i] / atr[i]
		}
		sum := plusDI + minusDI
		if sum == 0 {
			dx[i] = 0
			continue
		}
		dx[i] = 100 * math.Abs(plusDI-minusDI) / sum
	}
	return numeric.RollingMean(dx, period)
}
