package cdl

import (
	"strconv"
)

// Candle - одна свеча. Time - время открытия в миллисекундах Unix.
type Candle struct {
	Time     int64
	O        float64
	H        float64
	L        float64
	C        float64
	Volume   float64
	Turnover float64
}

// CandleStreamData - элемент потока свечей
type CandleStreamData struct {
	Candle   Candle
	Interval Interval
	Confirm  bool
}

// CSVHeader - заголовок CSV файла свечей
var CSVHeader = [7]string{
	"Open Time", "Open", "High", "Low", "Close", "Volume", "Quote Asset Volume",
}

// AsArr сериализует свечу в массив строк
func (c *Candle) AsArr() *[7]string {
	return &[7]string{
		strconv.FormatInt(c.Time, 10),
		strconv.FormatFloat(c.O, 'f', -1, 64),
		strconv.FormatFloat(c.H, 'f', -1, 64),
		strconv.FormatFloat(c.L, 'f', -1, 64),
		strconv.FormatFloat(c.C, 'f', -1, 64),
		strconv.FormatFloat(c.Volume, 'f', -1, 64),
		strconv.FormatFloat(c.Turnover, 'f', -1, 64),
	}
}

// ParseCandleFromRawData разбирает свечу из массива строк
func ParseCandleFromRawData(rawData [7]string) (Candle, error) {
	var candle Candle

	t, err := strconv.ParseInt(rawData[0], 10, 64)
	if err != nil {
		return candle, err
	}
	candle.Time = t

	fields := [6]*float64{
		&candle.O, &candle.H, &candle.L, &candle.C, &candle.Volume, &candle.Turnover,
	}
	for i, field := range fields {
		v, err := strconv.ParseFloat(rawData[i+1], 64)
		if err != nil {
			return candle, err
		}
		*field = v
	}

	return candle, nil
}
