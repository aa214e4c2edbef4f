package models

// Kline - сырая свеча из ответа REST API /api/v3/klines.
// Binance отдает массив смешанных типов: метки времени и счетчики числами,
// цены и объемы строками. Порядок элементов:
//
//	0  - время открытия (мс)
//	1  - цена открытия
//	2  - максимальная цена
//	3  - минимальная цена
//	4  - цена закрытия
//	5  - объем в базовой монете
//	6  - время закрытия (мс)
//	7  - объем в котируемой монете
//	8  - количество сделок
//	9  - объем покупок тейкеров в базовой монете
//	10 - объем покупок тейкеров в котируемой монете
//	11 - не используется
type Kline [12]any

// ServerError представляет структуру ответа об ошибке API Binance
type ServerError struct {
	Code int    `json:"code"` // код ошибки (отрицательный)
	Msg  string `json:"msg"`  // описание ошибки
}

// CandleStreamRawData представляет событие kline из потока WebSocket
type CandleStreamRawData struct {
	EventType string `json:"e"` // тип события ("kline")
	EventTime int64  `json:"E"` // время события (мс)
	Symbol    string `json:"s"` // символ

	Kline struct {
		Start    int64  `json:"t"` // время открытия свечи (мс)
		End      int64  `json:"T"` // время закрытия свечи (мс)
		Symbol   string `json:"s"` // символ
		Interval string `json:"i"` // интервал свечи
		Open     string `json:"o"` // цена открытия
		Close    string `json:"c"` // цена закрытия
		High     string `json:"h"` // максимальная цена
		Low      string `json:"l"` // минимальная цена
		Volume   string `json:"v"` // объем в базовой монете
		Turnover string `json:"q"` // объем в котируемой монете
		Confirm  bool   `json:"x"` // свеча закрыта
	} `json:"k"`
}
