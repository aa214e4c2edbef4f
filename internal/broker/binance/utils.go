package binance

import (
	"fmt"
	"strconv"

	"github.com/nikita55612/goDatasetMaker/internal/broker/binance/models"
	"github.com/nikita55612/goDatasetMaker/internal/cdl"
)

// AsLocalInterval преобразует cdl.Interval в локальный формат интервала.
func AsLocalInterval(i cdl.Interval) string {
	switch i {
	case cdl.M1:
		return "1m"
	case cdl.M3:
		return "3m"
	case cdl.M5:
		return "5m"
	case cdl.M15:
		return "15m"
	case cdl.M30:
		return "30m"
	case cdl.H1:
		return "1h"
	case cdl.H2:
		return "2h"
	case cdl.H4:
		return "4h"
	case cdl.H6:
		return "6h"
	case cdl.H12:
		return "12h"
	case cdl.D1:
		return "1d"
	case cdl.D7:
		return "1w"
	case cdl.D30:
		return "1M"
	}
	return ""
}

// klineField приводит элемент сырой свечи к строковому представлению
func klineField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// candleFromKline преобразует сырую свечу REST ответа в структурированную
func candleFromKline(k models.Kline) (cdl.Candle, error) {
	rawData := [7]string{
		klineField(k[0]), // время открытия
		klineField(k[1]), // цена открытия
		klineField(k[2]), // максимальная цена
		klineField(k[3]), // минимальная цена
		klineField(k[4]), // цена закрытия
		klineField(k[5]), // объем
		klineField(k[7]), // объем в котируемой монете
	}
	return cdl.ParseCandleFromRawData(rawData)
}

// extractCandlesFromKlines преобразует массив сырых свечей в массив структурированных свечей
func extractCandlesFromKlines(klines []models.Kline) ([]cdl.Candle, error) {
	candles := make([]cdl.Candle, len(klines))
	for i, k := range klines {
		candle, err := candleFromKline(k)
		if err != nil {
			return candles, NewError(SerDeErrorT, err)
		}
		candles[i] = candle
	}
	return candles, nil
}

// candleStreamFromRawData преобразует сырые данные свечей из WebSocket в структурированный формат.
// Служебные сообщения потока (подтверждение подписки) не несут свечу и отбрасываются.
func candleStreamFromRawData(d *models.CandleStreamRawData) (*cdl.CandleStreamData, error) {
	k := &d.Kline
	if k.Interval == "" {
		return nil, fmt.Errorf("empty data")
	}
	rawData := [7]string{
		strconv.FormatInt(k.Start, 10),
		k.Open,
		k.High,
		k.Low,
		k.Close,
		k.Volume,
		k.Turnover,
	}
	candle, err := cdl.ParseCandleFromRawData(rawData)
	if err != nil {
		return nil, err
	}
	interval, err := cdl.ParseInterval(k.Interval)
	if err != nil {
		return nil, err
	}
	return &cdl.CandleStreamData{
		Interval: interval,
		Confirm:  k.Confirm,
		Candle:   candle,
	}, nil
}
