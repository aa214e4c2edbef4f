package binance

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikita55612/goDatasetMaker/internal/utils/tools"
	"github.com/nikita55612/httpx"
)

const (
	MAINNET  = "https://api.binance.com"
	PUBLICWS = "wss://stream.binance.com:9443/ws"
)

// Client представляет клиент для работы с публичным API Binance
type Client struct {
	baseURL string          // Базовый URL API
	apiKey  string          // API-ключ
	ctx     context.Context // Контекст для выполнения запросов
	timeout time.Duration   // Таймаут HTTP-запросов
}

// NewClient создает новый экземпляр клиента для работы с API Binance.
// Рыночные данные доступны без ключа; непустой apiKey передается
// в заголовке X-MBX-APIKEY и повышает лимиты запросов.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL: MAINNET,
		apiKey:  apiKey,
		timeout: 10 * time.Second,
	}
	for _, option := range opts {
		option(client)
	}
	return client
}

// NewClientFromEnv создает клиент с ключом BINANCE_API_KEY из .env файла.
// Отсутствие файла или переменной не ошибка: ключ опционален.
func NewClientFromEnv(opts ...Option) *Client {
	if tools.PathExists(".env") {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("%s: NewClientFromEnv: ошибка загрузки .env файла", errorTitel)
		}
	}
	return NewClient(os.Getenv("BINANCE_API_KEY"), opts...)
}

// Option определяет тип функции для настройки Client
type Option func(*Client)

// WithContext устанавливает контекст для выполнения запросов
func WithContext(ctx context.Context) Option {
	return func(c *Client) {
		c.ctx = ctx
	}
}

// WithTimeout устанавливает таймаут для HTTP-запросов
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithBaseURL устанавливает пользовательский базовый URL API
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// callAPI выполняет запрос к API и записывает результат в result
func (c *Client) callAPI(req httpx.RequestBuilder, result any) error {
	if c.apiKey != "" {
		req = req.WithHeader("X-MBX-APIKEY", c.apiKey)
	}
	req = req.WithHeader("Accept", "application/json")
	if c.ctx != nil {
		req = req.WithContext(c.ctx)
	}
	if c.timeout > 0 {
		req = req.WithTimeout(c.timeout)
	}
	res, err := req.Build().Do()
	if err != nil {
		return NewError(RequestErrorT, err)
	}
	defer res.Close()

	var raw json.RawMessage
	if err := res.UnmarshalBody(&raw); err != nil {
		return NewError(SerDeErrorT, err)
	}
	if apiError := errorFromRawResponse(raw); apiError != nil {
		return apiError
	}
	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return NewError(SerDeErrorT, err)
		}
	}
	return nil
}
