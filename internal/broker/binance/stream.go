package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikita55612/goDatasetMaker/internal/broker/binance/models"
	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/ws"
)

// CandleStream устанавливает WebSocket соединение для потокового получения свечей.
// Канал закрывается при отмене контекста; при обрыве соединение
// восстанавливается с повторной подпиской.
// https://developers.binance.com/docs/binance-spot-api-docs/web-socket-streams
func (c *Client) CandleStream(ctx context.Context, symbol string, interval cdl.Interval) (<-chan *cdl.CandleStreamData, error) {
	arg := fmt.Sprintf("%s@kline_%s", strings.ToLower(symbol), AsLocalInterval(interval))
	subMessage := map[string]any{
		"id":     uuid.NewString(),
		"method": "SUBSCRIBE",
		"params": []string{arg},
	}
	handshakeMessage, _ := json.Marshal(subMessage)
	outChan, err := ws.Connect(
		PUBLICWS,
		ctx,
		ws.WithHandshake(handshakeMessage),
	)
	if err != nil {
		err = fmt.Errorf("failed to create websocket connection: %w", err)
		return nil, NewError(InternalErrorT, err).SetEndpoint("CandleStream")
	}

	stream := make(chan *cdl.CandleStreamData)
	go func() {
		for {
			select {
			case <-ctx.Done():
				close(stream)
				return
			case data := <-outChan:
				var candleStreamRawData models.CandleStreamRawData
				if err := json.Unmarshal(data, &candleStreamRawData); err != nil {
					continue
				}
				candleStreamData, err := candleStreamFromRawData(&candleStreamRawData)
				if err != nil {
					continue
				}
				select {
				case stream <- candleStreamData:
				case <-time.After(time.Second):
					if candleStreamData.Confirm {
						stream <- candleStreamData
					}
				}

			}
		}
	}()

	return stream, nil
}
