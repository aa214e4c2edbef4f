package indicator

import (
	"fmt"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/series"
)

// ComputeMACD строит таблицу семейства MACD: MACD = EMA(fast) - EMA(slow)
// по цене закрытия, Signal = EMA(signal) от MACD, Histogram = MACD - Signal.
// Колонки: Open Time, Close, MACD, Signal, Histogram.
func ComputeMACD(candles []cdl.Candle, fast, slow, signal int) (*series.Table, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, fmt.Errorf(
			"indicator: периоды MACD должны быть положительными, получены %d/%d/%d",
			fast, slow, signal,
		)
	}
	closes := cdl.ListOfCandleArg(candles, cdl.Close)
	emaFast := ComputeEMA(closes, fast)
	emaSlow := ComputeEMA(closes, slow)

	macd := make([]float64, len(closes))
	for i := range macd {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := ComputeEMA(macd, signal)
	histogram := make([]float64, len(closes))
	for i := range histogram {
		histogram[i] = macd[i] - signalLine[i]
	}

	t := series.NewTable("MACD", cdl.CSVHeader[0])
	t.AddTime(cdl.CSVHeader[0], candleTimes(candles))
	t.Add("Close", closes)
	t.Add("MACD", macd)
	t.Add("Signal", signalLine)
	t.Add("Histogram", histogram)
	return t, nil
}
