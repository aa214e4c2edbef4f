package seqs

// OrderedMap - отображение ключ-значение с сохранением порядка вставки ключей
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap создает пустой OrderedMap с заданной начальной емкостью
func NewOrderedMap[K comparable, V any](capacity int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		keys:   make([]K, 0, capacity),
		values: make(map[K]V, capacity),
	}
}

// Set добавляет новый ключ в конец порядка или обновляет существующий
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get возвращает значение по ключу
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has проверяет наличие ключа
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Keys возвращает ключи в порядке вставки
func (m *OrderedMap[K, V]) Keys() []K {
	return m.keys
}

// Len возвращает количество ключей
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// Clone возвращает поверхностную копию
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	clone := &OrderedMap[K, V]{
		keys:   make([]K, len(m.keys)),
		values: make(map[K]V, len(m.values)),
	}
	copy(clone.keys, m.keys)
	for k, v := range m.values {
		clone.values[k] = v
	}
	return clone
}
