package indicator

import (
	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/utils/numeric"
)

// ComputeSMA возвращает простое скользящее среднее цены закрытия:
// среднее арифметическое period последних свечей включая текущую.
// Первые period-1 значений не определены.
func ComputeSMA(candles []cdl.Candle, period int) []float64 {
	return numeric.RollingMean(cdl.ListOfCandleArg(candles, cdl.Close), period)
}
