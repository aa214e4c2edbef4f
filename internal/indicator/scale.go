package indicator

import (
	"strings"

	"github.com/nikita55612/goDatasetMaker/internal/series"
	"github.com/nikita55612/goDatasetMaker/internal/utils/norm"
)

// ScaleSMA выражает каждую колонку SMA* как процентное отклонение от цены
// закрытия той же строки: (sma - close)/close*100. Колонка Close в результат
// не входит. Формула закреплена контрактом выходного датасета: значения
// соседних строк считаются от разных цен закрытия.
func ScaleSMA(t *series.Table) (*series.Table, error) {
	if err := t.Require("Close"); err != nil {
		return nil, err
	}
	closes, _ := t.Values("Close")
	res := series.NewTable(t.Name(), t.Key())
	for _, name := range t.Columns() {
		if name == "Close" {
			continue
		}
		if times, ok := t.Times(name); ok {
			res.AddTime(name, times)
			continue
		}
		values, _ := t.Values(name)
		if strings.HasPrefix(name, string(SMA)) {
			values = norm.PctDeviation(values, closes)
		}
		res.Add(name, values)
	}
	return res, nil
}

// ScaleMACD выражает MACD, Signal и Histogram в процентах от цены закрытия
// той же строки (x/close*100) в колонках MACD_Value, MACD_Signal и
// MACD_Histogram. Close и сырые колонки в результат не входят.
func ScaleMACD(t *series.Table) (*series.Table, error) {
	if err := t.Require("Close", "MACD", "Signal", "Histogram"); err != nil {
		return nil, err
	}
	closes, _ := t.Values("Close")
	res := series.NewTable(t.Name(), t.Key())
	for _, name := range t.Columns() {
		switch name {
		case "Close", "MACD", "Signal", "Histogram":
			continue
		}
		if times, ok := t.Times(name); ok {
			res.AddTime(name, times)
			continue
		}
		values, _ := t.Values(name)
		res.Add(name, values)
	}
	macd, _ := t.Values("MACD")
	signal, _ := t.Values("Signal")
	histogram, _ := t.Values("Histogram")
	res.Add("MACD_Value", norm.PctRatio(macd, closes))
	res.Add("MACD_Signal", norm.PctRatio(signal, closes))
	res.Add("MACD_Histogram", norm.PctRatio(histogram, closes))
	return res, nil
}
