package cdl

import "fmt"

// Interval - интервал свечи
type Interval string

// Константы интервалов
const (
	M1  Interval = "M1"  // 1 минута
	M3  Interval = "M3"  // 3 минуты
	M5  Interval = "M5"  // 5 минут
	M15 Interval = "M15" // 15 минут
	M30 Interval = "M30" // 30 минут
	H1  Interval = "H1"  // 1 час
	H2  Interval = "H2"  // 2 часа
	H4  Interval = "H4"  // 4 часа
	H6  Interval = "H6"  // 6 часов
	H12 Interval = "H12" // 12 часов
	D1  Interval = "D1"  // 1 день
	D7  Interval = "D7"  // 7 дней
	D30 Interval = "D30" // 30 дней
)

// ParseInterval разбирает интервал из канонической ("M5") или биржевой ("5m") формы
func ParseInterval(s string) (Interval, error) {
	switch s {
	case "M1", "1m":
		return M1, nil
	case "M3", "3m":
		return M3, nil
	case "M5", "5m":
		return M5, nil
	case "M15", "15m":
		return M15, nil
	case "M30", "30m":
		return M30, nil
	case "H1", "1h":
		return H1, nil
	case "H2", "2h":
		return H2, nil
	case "H4", "4h":
		return H4, nil
	case "H6", "6h":
		return H6, nil
	case "H12", "12h":
		return H12, nil
	case "D1", "1d":
		return D1, nil
	case "D7", "1w":
		return D7, nil
	case "D30", "1M":
		return D30, nil
	}
	return "", fmt.Errorf("неизвестный интервал: %s", s)
}

// AsMilli возвращает длительность интервала в миллисекундах
func (i Interval) AsMilli() int {
	switch i {
	case M1:
		return 60_000
	case M3:
		return 180_000
	case M5:
		return 300_000
	case M15:
		return 900_000
	case M30:
		return 1_800_000
	case H1:
		return 3_600_000
	case H2:
		return 7_200_000
	case H4:
		return 14_400_000
	case H6:
		return 21_600_000
	case H12:
		return 43_200_000
	case D1:
		return 86_400_000
	case D7:
		return 604_800_000
	case D30:
		return 2_592_000_000
	}
	return 0
}
