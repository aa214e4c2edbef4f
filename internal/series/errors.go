package series

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyIntersection возвращается, когда пересечение таблиц
// по ключевой колонке времени пусто
var ErrEmptyIntersection = errors.New("пересечение по ключевой колонке пусто")

// FormatError описывает таблицу без обязательных колонок
type FormatError struct {
	Name    string
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(
		"%s: отсутствуют обязательные колонки: %s",
		e.Name, strings.Join(e.Missing, ", "),
	)
}
