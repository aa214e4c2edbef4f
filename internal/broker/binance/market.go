package binance

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/nikita55612/goDatasetMaker/internal/broker/binance/models"
	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/httpx"
)

// GetCandles возвращает не более limit последних исторических свечей
// в хронологическом порядке. Binance отдает страницы до 1000 свечей
// по возрастанию времени, история листается назад через endTime.
// Последняя свеча не подтверждена.
// https://developers.binance.com/docs/binance-spot-api-docs/rest-api/market-data-endpoints
func (c *Client) GetCandles(symbol string, interval cdl.Interval, limit int) ([]cdl.Candle, error) {
	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("interval", AsLocalInterval(interval))
	query.Set("limit", strconv.Itoa(min(limit, 1000)))
	candles, err := c.getKlines(query)
	if err != nil {
		return nil, err
	}

	counter := limit - 1000
	for counter > 0 && len(candles) > 0 {
		nextLimit := min(1000, counter)
		end := candles[0].Time - 1
		query.Set("limit", strconv.Itoa(nextLimit))
		query.Set("endTime", strconv.FormatInt(end, 10))
		page, err := c.getKlines(query)
		if err != nil {
			return candles, err
		}
		if len(page) == 0 {
			break
		}
		candles = append(page, candles...)
		counter -= len(page)
		if len(page) < nextLimit {
			break
		}
	}

	return candles, nil
}

// GetCandlesFrom возвращает все свечи от метки start (мс) до текущего
// момента в хронологическом порядке, листая историю вперед через startTime.
// Последняя свеча не подтверждена.
func (c *Client) GetCandlesFrom(symbol string, interval cdl.Interval, start int64) ([]cdl.Candle, error) {
	query := make(url.Values)
	query.Set("symbol", symbol)
	query.Set("interval", AsLocalInterval(interval))
	query.Set("limit", "1000")
	query.Set("startTime", strconv.FormatInt(start, 10))

	var candles []cdl.Candle
	for {
		page, err := c.getKlines(query)
		if err != nil {
			return candles, err
		}
		candles = append(candles, page...)
		if len(page) < 1000 {
			break
		}
		next := candles[len(candles)-1].Time + 1
		query.Set("startTime", strconv.FormatInt(next, 10))
	}

	return candles, nil
}

// getKlines выполняет запрос исторических данных свечей
func (c *Client) getKlines(query url.Values) ([]cdl.Candle, error) {
	path := fmt.Sprintf(
		"%s%s?%s",
		c.baseURL,
		"/api/v3/klines",
		query.Encode(),
	)
	req := httpx.Get(path)
	var klines []models.Kline
	if err := c.callAPI(req, &klines); err != nil {
		return nil, err.(*Error).SetEndpoint("getKlines")
	}

	return extractCandlesFromKlines(klines)
}
