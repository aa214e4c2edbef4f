package slogx

import (
	"context"
	"log/slog"
)

type record struct {
	level slog.Level
	msg   string
	args  []any
}

// AsyncSlog - асинхронная обертка над slog.Logger.
// Записи уходят в буферизованный канал и пишутся фоновой горутиной.
type AsyncSlog struct {
	logger *slog.Logger
	ctx    context.Context
	ch     chan record
}

// NewAsyncSlog создает AsyncSlog и запускает фоновую запись.
// Горутина завершается после отмены контекста, дописав остаток буфера.
func NewAsyncSlog(ctx context.Context, logger *slog.Logger) *AsyncSlog {
	a := &AsyncSlog{
		logger: logger,
		ctx:    ctx,
		ch:     make(chan record, 256),
	}
	go a.run()
	return a
}

// Log отправляет запись в буфер
func (a *AsyncSlog) Log(level slog.Level, msg string, args ...any) {
	select {
	case a.ch <- record{level: level, msg: msg, args: args}:
	case <-a.ctx.Done():
	}
}

func (a *AsyncSlog) run() {
	for {
		select {
		case r := <-a.ch:
			a.logger.Log(a.ctx, r.level, r.msg, r.args...)
		case <-a.ctx.Done():
			for {
				select {
				case r := <-a.ch:
					a.logger.Log(context.Background(), r.level, r.msg, r.args...)
				default:
					return
				}
			}
		}
	}
}
