package series

import "fmt"

func intersect(a, b []int64) map[int64]struct{} {
	bSet := make(map[int64]struct{}, len(b))
	for _, ts := range b {
		bSet[ts] = struct{}{}
	}
	common := make(map[int64]struct{}, min(len(a), len(b)))
	for _, ts := range a {
		if _, ok := bSet[ts]; ok {
			common[ts] = struct{}{}
		}
	}
	return common
}

// Align приводит две таблицы к общему множеству значений ключевой колонки
// времени a. Каждая таблица фильтруется до строк, чье время входит в
// пересечение, с сохранением исходного относительного порядка. Результаты
// имеют одинаковую длину и идентичные последовательности ключей.
// Пустое пересечение - ошибка ErrEmptyIntersection.
func Align(a, b *Table) (*Table, *Table, error) {
	aKeys := a.KeyTimes()
	if aKeys == nil {
		return nil, nil, fmt.Errorf("series: таблица %s не содержит ключевой колонки %q", a.name, a.key)
	}
	bKeys, ok := b.Times(a.key)
	if !ok {
		return nil, nil, fmt.Errorf("series: таблица %s не содержит ключевой колонки %q", b.name, a.key)
	}
	common := intersect(aKeys, bKeys)
	if len(common) == 0 {
		return nil, nil, fmt.Errorf("series: %w: %s и %s", ErrEmptyIntersection, a.name, b.name)
	}
	fa := a.filter(func(i int) bool {
		_, ok := common[aKeys[i]]
		return ok
	})
	fb := b.filter(func(i int) bool {
		_, ok := common[bKeys[i]]
		return ok
	})
	return fa, fb, nil
}

// Merge объединяет две таблицы внутренним соединением по ключевой колонке a.
// Колонки результата: колонки a, затем колонки b без его ключевой.
// Совпадение имен колонок - ошибка.
func Merge(a, b *Table) (*Table, error) {
	fa, fb, err := Align(a, b)
	if err != nil {
		return nil, err
	}
	for _, c := range fb.cols {
		if c.name == a.key {
			continue
		}
		if _, ok := fa.index[c.name]; ok {
			return nil, fmt.Errorf("series: колонка %q присутствует в обеих таблицах", c.name)
		}
		fa.index[c.name] = len(fa.cols)
		fa.cols = append(fa.cols, c)
	}
	return fa, nil
}

// Combine последовательно объединяет таблицы слева направо
func Combine(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("series: нет таблиц для объединения")
	}
	res := tables[0]
	for _, t := range tables[1:] {
		var err error
		if res, err = Merge(res, t); err != nil {
			return nil, err
		}
	}
	return res, nil
}
