package binance

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/nikita55612/goDatasetMaker/internal/broker/binance/models"
)

const errorTitel = "BinanceAPI"

// ErrorType представляет тип ошибки
type ErrorType string

// Типы ошибок, возвращаемых при работе с API
const (
	RequestErrorT        ErrorType = "RequestError"        // Ошибка выполнения запроса
	ServerResponseErrorT ErrorType = "ServerResponseError" // Ошибка в ответе сервера
	SerDeErrorT          ErrorType = "SerDeError"          // Ошибка сериализации/десериализации
	InternalErrorT       ErrorType = "InternalError"       // Внутренняя ошибка
	UnknownErrorT        ErrorType = "UnknownError"        // Неизвестная ошибка
)

// Error представляет ошибку при работе с API
type Error struct {
	Type     ErrorType // Тип ошибки
	Err      error     // Исходная ошибка
	Endpoint string    // Конечная точка API
}

// NewError создает новую ошибку с указанным типом
func NewError(t ErrorType, e error) *Error {
	return &Error{
		Type: t,
		Err:  e,
	}
}

// ServerResponseCode возвращает код ошибки сервера или 0
func (e *Error) ServerResponseCode() int {
	err, ok := e.Err.(*serverResponseError)
	if !ok {
		return 0
	}
	return err.code
}

// SetEndpoint устанавливает конечную точку API в копии ошибки
func (e *Error) SetEndpoint(endpoint string) *Error {
	newError := *e
	newError.Endpoint = endpoint
	return &newError
}

// Error возвращает строковое представление ошибки
func (e *Error) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("%s: %s: %s: %s", errorTitel, e.Endpoint, e.Type, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", errorTitel, e.Type, e.Err)
}

// serverResponseError представляет ошибку из ответа сервера
type serverResponseError struct {
	msg  string
	code int
}

func (e *serverResponseError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.msg, e.code)
}

// errorFromRawResponse распознает ответ об ошибке API. Успешный ответ
// /api/v3/klines - JSON массив, ошибка приходит объектом с полями code и msg.
func errorFromRawResponse(raw []byte) *Error {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	var serverError models.ServerError
	if err := json.Unmarshal(data, &serverError); err != nil {
		return NewError(SerDeErrorT, err)
	}
	if serverError.Code == 0 {
		return nil
	}
	return NewError(ServerResponseErrorT, &serverResponseError{
		msg:  serverError.Msg,
		code: serverError.Code,
	})
}
