package dataset

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nikita55612/goDatasetMaker/internal/utils/seqs"
)

// Value - узел JSON документа. Закрытое множество вариантов:
// Object, Array, String, Number, Int и Null.
type Value interface {
	jsonValue()
}

// Object - JSON объект с сохранением порядка вставки членов
type Object struct {
	members *seqs.OrderedMap[string, Value]
}

// NewObject создает пустой объект
func NewObject() *Object {
	return &Object{members: seqs.NewOrderedMap[string, Value](8)}
}

// Set записывает член объекта и возвращает объект для цепочки вызовов
func (o *Object) Set(key string, v Value) *Object {
	o.members.Set(key, v)
	return o
}

// Array - JSON массив
type Array []Value

// String - JSON строка
type String string

// Number - JSON число с плавающей точкой.
// NaN и Inf выводятся как null, документ остается синтаксически корректным.
type Number float64

// Int - целое JSON число
type Int int64

// Null - JSON null
type Null struct{}

func (*Object) jsonValue() {}
func (Array) jsonValue()   {}
func (String) jsonValue()  {}
func (Number) jsonValue()  {}
func (Int) jsonValue()     {}
func (Null) jsonValue()    {}

// WriteValue рекурсивно выводит узел в w. Единственная точка форматирования.
func WriteValue(w io.Writer, v Value) error {
	switch x := v.(type) {
	case *Object:
		if _, err := io.WriteString(w, "{"); err != nil {
			return err
		}
		for i, key := range x.members.Keys() {
			if i > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if err := writeQuoted(w, key); err != nil {
				return err
			}
			if _, err := io.WriteString(w, ": "); err != nil {
				return err
			}
			member, _ := x.members.Get(key)
			if err := WriteValue(w, member); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "}")
		return err
	case Array:
		if _, err := io.WriteString(w, "["); err != nil {
			return err
		}
		for i, elem := range x {
			if i > 0 {
				if _, err := io.WriteString(w, ","); err != nil {
					return err
				}
			}
			if err := WriteValue(w, elem); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "]")
		return err
	case String:
		return writeQuoted(w, string(x))
	case Number:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			_, err := io.WriteString(w, "null")
			return err
		}
		_, err := io.WriteString(w, strconv.FormatFloat(f, 'f', -1, 64))
		return err
	case Int:
		_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
		return err
	case Null:
		_, err := io.WriteString(w, "null")
		return err
	}
	return fmt.Errorf("dataset: неизвестный вариант JSON значения %T", v)
}

// writeQuoted выводит экранированную JSON строку в кавычках
func writeQuoted(w io.Writer, s string) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '"':
			buf = append(buf, '\\', '"')
		case '\\':
			buf = append(buf, '\\', '\\')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		case '\t':
			buf = append(buf, '\\', 't')
		default:
			if b < 0x20 {
				buf = append(buf, fmt.Sprintf(`\u%04x`, b)...)
				continue
			}
			buf = append(buf, b)
		}
	}
	buf = append(buf, '"')
	_, err := w.Write(buf)
	return err
}
