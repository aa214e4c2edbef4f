package indicator

import (
	"math"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/utils/numeric"
)

// ComputeRSI возвращает индекс относительной силы по цене закрытия.
// Средние прироста и падения сглаживаются скользящим средним за period,
// RSI = 100 - 100/(1+RS), где RS = avgGain/avgLoss. При нулевом среднем
// падении RS бесконечен и RSI равен ровно 100, деление на ноль не
// распространяется как NaN. Первые period-1 значений не определены.
func ComputeRSI(candles []cdl.Candle, period int) []float64 {
	closes := cdl.ListOfCandleArg(candles, cdl.Close)
	deltas := numeric.Diff(closes)

	gains := make([]float64, len(deltas))
	losses := make([]float64, len(deltas))
	for i, d := range deltas {
		// первая разность не определена и дает нулевой вклад в окно
		if math.IsNaN(d) {
			continue
		}
		if d > 0 {
			gains[i] = d
		} else if d < 0 {
			losses[i] = -d
		}
	}
	avgGain := numeric.RollingMean(gains, period)
	avgLoss := numeric.RollingMean(losses, period)

	rsi := make([]float64, len(closes))
	for i := range rsi {
		if math.IsNaN(avgGain[i]) || math.IsNaN(avgLoss[i]) {
			rsi[i] = math.NaN()
			continue
		}
		if avgLoss[i] == 0 {
			rsi[i] = 100
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		rsi[i] = 100 - 100/(1+rs)
	}
	return rsi
}
