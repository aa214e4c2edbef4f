package cdl

// CandleArg - тип для выбора параметра свечи
type CandleArg string

// Константы параметров свечи
const (
	Time      CandleArg = "T"        // Время открытия (timestamp)
	Open      CandleArg = "O"        // Цена открытия
	High      CandleArg = "H"        // Максимальная цена
	Low       CandleArg = "L"        // Минимальная цена
	Close     CandleArg = "C"        // Цена закрытия
	Volume    CandleArg = "V"        // Объем торгов
	Turnover  CandleArg = "Turnover" // Оборот
	TrueRange CandleArg = "TR"       // Диапазон High-Low
)

// ListOfCandleArg возвращает список значений указанного параметра свечей
func ListOfCandleArg(candles []Candle, arg CandleArg) []float64 {
	list := make([]float64, len(candles))

	for i := range candles {
		list[i] = candles[i].Arg(arg)
	}

	return list
}

// Arg возвращает значение указанного параметра свечи
func (c *Candle) Arg(a CandleArg) float64 {
	switch a {
	case Time:
		return float64(c.Time)
	case Open:
		return c.O
	case High:
		return c.H
	case Low:
		return c.L
	case Close:
		return c.C
	case Volume:
		return c.Volume
	case Turnover:
		return c.Turnover
	case TrueRange:
		return c.H - c.L
	}
	return 0
}
