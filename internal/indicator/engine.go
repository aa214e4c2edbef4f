package indicator

import (
	"fmt"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/series"
)

// Kind - вид индикатора
type Kind string

// Встроенные виды индикаторов
const (
	SMA Kind = "SMA"
	RSI Kind = "RSI"
	ADX Kind = "ADX"
)

// PeriodFunc вычисляет серию значений индикатора с заданным периодом.
// Длина результата равна длине входного среза свечей, значения до
// завершения прогрева - NaN.
type PeriodFunc func(candles []cdl.Candle, period int) []float64

// запись реестра видов индикаторов
type kindEntry struct {
	fn        PeriodFunc
	withClose bool // таблица несет сырую колонку Close (нужна скейлеру)
}

var registry = map[Kind]kindEntry{
	SMA: {fn: ComputeSMA, withClose: true},
	RSI: {fn: ComputeRSI},
	ADX: {fn: ComputeADX},
}

// Register добавляет вид индикатора в реестр. Новый вид попадает в общий
// конвейер без изменений в объединении таблиц и нарезке окон.
// Реестр заполняется до начала вычислений и не защищен от гонок.
func Register(kind Kind, fn PeriodFunc, withClose bool) {
	registry[kind] = kindEntry{fn: fn, withClose: withClose}
}

func candleTimes(candles []cdl.Candle) []int64 {
	times := make([]int64, len(candles))
	for i := range candles {
		times[i] = candles[i].Time
	}
	return times
}

// Compute строит таблицу индикатора: общая колонка времени Open Time
// и одна колонка на каждый период в порядке запроса. Имя колонки
// складывается из вида и периода, например RSI14.
func Compute(kind Kind, candles []cdl.Candle, periods []int) (*series.Table, error) {
	entry, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("indicator: неизвестный вид индикатора %q", kind)
	}
	t := series.NewTable(string(kind), cdl.CSVHeader[0])
	t.AddTime(cdl.CSVHeader[0], candleTimes(candles))
	if entry.withClose {
		t.Add("Close", cdl.ListOfCandleArg(candles, cdl.Close))
	}
	seen := make(map[int]bool, len(periods))
	for _, period := range periods {
		if period <= 0 {
			return nil, fmt.Errorf("indicator: период должен быть положительным, получен %d", period)
		}
		if seen[period] {
			return nil, fmt.Errorf("indicator: дубликат периода %d", period)
		}
		seen[period] = true
		t.Add(fmt.Sprintf("%s%d", kind, period), entry.fn(candles, period))
	}
	return t, nil
}
