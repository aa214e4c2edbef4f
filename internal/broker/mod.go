package broker

import (
	"context"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
)

// CandleProvider определяет интерфейс поставщика свечных данных
type CandleProvider interface {
	// GetCandles возвращает не более limit последних свечей
	// в хронологическом порядке
	GetCandles(symbol string, interval cdl.Interval, limit int) ([]cdl.Candle, error)

	// GetCandlesFrom возвращает все свечи от метки start (мс)
	// до текущего момента в хронологическом порядке
	GetCandlesFrom(symbol string, interval cdl.Interval, start int64) ([]cdl.Candle, error)

	// CandleStream устанавливает соединение для потокового получения свечей.
	// Канал закрывается при отмене контекста.
	CandleStream(ctx context.Context, symbol string, interval cdl.Interval) (<-chan *cdl.CandleStreamData, error)
}
