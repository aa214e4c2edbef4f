package cdl

import (
	"context"
	"log/slog"

	"github.com/nikita55612/goDatasetMaker/internal/utils/slogx"
	"github.com/nikita55612/goDatasetMaker/internal/utils/tools"
)

// CandleProvider определяет интерфейс поставщика свечных данных,
// достаточный для записи потока
type CandleProvider interface {
	CandleStream(ctx context.Context, symbol string, interval Interval) (<-chan *CandleStreamData, error)
	GetCandlesFrom(symbol string, interval Interval, start int64) ([]Candle, error)
}

// Appender принимает подтвержденные свечи для записи
type Appender func(candles ...Candle) error

// Recorder дописывает подтвержденные свечи из потока провайдера.
// Пропуски между последней записанной и новой подтвержденной свечой
// восстанавливаются повторной загрузкой истории.
type Recorder struct {
	Symbol      string
	Interval    Interval
	ctx         context.Context
	provider    CandleProvider
	appendFn    Appender
	confirmTime int64
	logger      *slogx.AsyncSlog
}

// NewRecorder создает новый Recorder. lastTime - время последней уже
// записанной свечи, 0 если записей еще нет.
func NewRecorder(
	ctx context.Context,
	symbol string,
	interval Interval,
	lastTime int64,
	provider CandleProvider,
	appendFn Appender,
	logger *slogx.AsyncSlog,
) *Recorder {
	return &Recorder{
		Symbol:      symbol,
		Interval:    interval,
		ctx:         ctx,
		provider:    provider,
		appendFn:    appendFn,
		confirmTime: lastTime,
		logger:      logger,
	}
}

func (r *Recorder) log(level slog.Level, msg string, args ...any) {
	if r.logger != nil {
		r.logger.Log(level, msg, args...)
	}
}

// Run подключается к потоку и пишет подтвержденные свечи до отмены контекста
func (r *Recorder) Run() error {
	stream, err := r.provider.CandleStream(r.ctx, r.Symbol, r.Interval)
	if err != nil {
		return err
	}
	intervalMs := int64(r.Interval.AsMilli())

	for data := range stream {
		if data == nil || !data.Confirm {
			continue
		}
		candle := data.Candle
		if r.confirmTime == 0 {
			r.confirmTime = candle.Time - intervalMs
		}
		missCount := (candle.Time - r.confirmTime + 5) / intervalMs
		if missCount <= 0 {
			continue
		}
		if missCount == 1 {
			if err := r.appendFn(candle); err != nil {
				return err
			}
			r.confirmTime = candle.Time
			r.log(slog.LevelInfo, "candle recorded",
				"time", tools.TimestampToString(candle.Time),
			)
			continue
		}

		// Восстанавливаем пропущенные свечи вместе с текущей
		missCandles, err := r.provider.GetCandlesFrom(r.Symbol, r.Interval, r.confirmTime+1)
		if err != nil {
			r.log(slog.LevelError, "failed to backfill missed candles", "error", err)
			continue
		}
		confirmed := make([]Candle, 0, len(missCandles))
		for _, c := range missCandles {
			if c.Time > r.confirmTime && c.Time <= candle.Time {
				confirmed = append(confirmed, c)
			}
		}
		if len(confirmed) == 0 {
			continue
		}
		if err := r.appendFn(confirmed...); err != nil {
			return err
		}
		r.confirmTime = confirmed[len(confirmed)-1].Time
		r.log(slog.LevelInfo, "missed candles recovered",
			"count", len(confirmed),
			"time", tools.TimestampToString(r.confirmTime),
		)
	}

	return nil
}
