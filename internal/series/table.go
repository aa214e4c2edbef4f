package series

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/utils/seqs"
)

// колонка таблицы: временная (Unix мс) или числовая
type column struct {
	name   string
	isTime bool
	times  []int64
	values []float64
}

// Table - колоночная таблица временного ряда. Ключевая временная колонка
// задает общий индекс таблицы, остальные колонки хранят значения в порядке
// добавления. Неопределенные значения представлены NaN и никогда не
// приводятся к нулю.
type Table struct {
	name  string
	key   string
	cols  []column
	index map[string]int
}

// NewTable создает пустую таблицу. name используется в диагностике
// (обычно путь к исходному файлу), key - имя ключевой временной колонки.
func NewTable(name, key string) *Table {
	return &Table{
		name:  name,
		key:   key,
		index: make(map[string]int),
	}
}

// Name возвращает имя таблицы
func (t *Table) Name() string {
	return t.name
}

// Key возвращает имя ключевой временной колонки
func (t *Table) Key() string {
	return t.key
}

// Len возвращает количество строк таблицы
func (t *Table) Len() int {
	if len(t.cols) == 0 {
		return 0
	}
	if c := t.cols[0]; c.isTime {
		return len(c.times)
	}
	return len(t.cols[0].values)
}

// Columns возвращает имена колонок в порядке добавления
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

func (t *Table) checkAdd(name string, length int) {
	if _, ok := t.index[name]; ok {
		panic(fmt.Sprintf("колонка %q уже существует в таблице %s", name, t.name))
	}
	if len(t.cols) > 0 && length != t.Len() {
		panic(fmt.Sprintf(
			"длина колонки %q (%d) не совпадает с длиной таблицы %s (%d)",
			name, length, t.name, t.Len(),
		))
	}
}

// AddTime добавляет временную колонку. Таблица владеет копией среза.
// Паникует при дубликате имени или несовпадении длины.
func (t *Table) AddTime(name string, times []int64) {
	t.checkAdd(name, len(times))
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, column{name: name, isTime: true, times: slices.Clone(times)})
}

// Add добавляет числовую колонку. Таблица владеет копией среза.
// Паникует при дубликате имени или несовпадении длины.
func (t *Table) Add(name string, values []float64) {
	t.checkAdd(name, len(values))
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, column{name: name, values: slices.Clone(values)})
}

// Times возвращает значения временной колонки
func (t *Table) Times(name string) ([]int64, bool) {
	i, ok := t.index[name]
	if !ok || !t.cols[i].isTime {
		return nil, false
	}
	return t.cols[i].times, true
}

// Values возвращает значения числовой колонки
func (t *Table) Values(name string) ([]float64, bool) {
	i, ok := t.index[name]
	if !ok || t.cols[i].isTime {
		return nil, false
	}
	return t.cols[i].values, true
}

// KeyTimes возвращает значения ключевой временной колонки
// или nil, если ее нет
func (t *Table) KeyTimes() []int64 {
	times, _ := t.Times(t.key)
	return times
}

// Require проверяет наличие обязательных колонок
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, name := range cols {
		if _, ok := t.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &FormatError{Name: t.name, Missing: missing}
	}
	return nil
}

// Row - одна строка таблицы: ключевое время и отображение имя-значение
// всех числовых колонок в порядке колонок таблицы
type Row struct {
	Time   int64
	Values *seqs.OrderedMap[string, float64]
}

// Rows возвращает ленивую перезапускаемую последовательность строк
// полуинтервала [from, to). Временные колонки в значения строки не входят.
func (t *Table) Rows(from, to int) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		keys := t.KeyTimes()
		from, to := max(from, 0), min(to, t.Len())
		for i := from; i < to; i++ {
			values := seqs.NewOrderedMap[string, float64](len(t.cols))
			for _, c := range t.cols {
				if c.isTime {
					continue
				}
				values.Set(c.name, c.values[i])
			}
			row := Row{Values: values}
			if keys != nil {
				row.Time = keys[i]
			}
			if !yield(row) {
				return
			}
		}
	}
}

// filter возвращает новую таблицу со строками, для которых keep истинен
func (t *Table) filter(keep func(i int) bool) *Table {
	n := t.Len()
	idx := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	res := NewTable(t.name, t.key)
	for _, c := range t.cols {
		fc := column{name: c.name, isTime: c.isTime}
		if c.isTime {
			fc.times = make([]int64, len(idx))
			for j, i := range idx {
				fc.times[j] = c.times[i]
			}
		} else {
			fc.values = make([]float64, len(idx))
			for j, i := range idx {
				fc.values[j] = c.values[i]
			}
		}
		res.index[fc.name] = len(res.cols)
		res.cols = append(res.cols, fc)
	}
	return res
}

// DropUndefined возвращает новую таблицу без строк с неопределенными
// (NaN) значениями
func (t *Table) DropUndefined() *Table {
	return t.filter(func(i int) bool {
		for _, c := range t.cols {
			if !c.isTime && math.IsNaN(c.values[i]) {
				return false
			}
		}
		return true
	})
}

// FromCandles строит каноническую таблицу свечей с колонками cdl.CSVHeader
func FromCandles(name string, candles []cdl.Candle) *Table {
	times := make([]int64, len(candles))
	for i := range candles {
		times[i] = candles[i].Time
	}
	t := NewTable(name, cdl.CSVHeader[0])
	t.AddTime(cdl.CSVHeader[0], times)
	t.Add(cdl.CSVHeader[1], cdl.ListOfCandleArg(candles, cdl.Open))
	t.Add(cdl.CSVHeader[2], cdl.ListOfCandleArg(candles, cdl.High))
	t.Add(cdl.CSVHeader[3], cdl.ListOfCandleArg(candles, cdl.Low))
	t.Add(cdl.CSVHeader[4], cdl.ListOfCandleArg(candles, cdl.Close))
	t.Add(cdl.CSVHeader[5], cdl.ListOfCandleArg(candles, cdl.Volume))
	t.Add(cdl.CSVHeader[6], cdl.ListOfCandleArg(candles, cdl.Turnover))
	return t
}

// ToCandles преобразует таблицу свечей в срез свечей. Обязательны
// колонки Open Time, Open, High, Low, Close и Volume; Quote Asset Volume
// переносится в Turnover, если присутствует.
func ToCandles(t *Table) ([]cdl.Candle, error) {
	if err := t.Require(cdl.CSVHeader[:6]...); err != nil {
		return nil, err
	}
	times, ok := t.Times(cdl.CSVHeader[0])
	if !ok {
		return nil, &FormatError{Name: t.name, Missing: []string{cdl.CSVHeader[0]}}
	}
	opens, _ := t.Values(cdl.CSVHeader[1])
	highs, _ := t.Values(cdl.CSVHeader[2])
	lows, _ := t.Values(cdl.CSVHeader[3])
	closes, _ := t.Values(cdl.CSVHeader[4])
	volumes, _ := t.Values(cdl.CSVHeader[5])
	turnovers, _ := t.Values(cdl.CSVHeader[6])

	candles := make([]cdl.Candle, t.Len())
	for i := range candles {
		candles[i] = cdl.Candle{
			Time:   times[i],
			O:      opens[i],
			H:      highs[i],
			L:      lows[i],
			C:      closes[i],
			Volume: volumes[i],
		}
		if turnovers != nil {
			candles[i].Turnover = turnovers[i]
		}
	}
	return candles, nil
}
