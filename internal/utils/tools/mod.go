package tools

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TimestampToString преобразует Unix timestamp (в миллисекундах) в строку RFC3339 (UTC)
func TimestampToString(ts int64) string {
	s, _ := time.Unix(ts/1000, 0).UTC().MarshalText()
	return string(s)
}

// ParseTimestamp разбирает строку времени в Unix timestamp (в миллисекундах).
// Поддерживаются RFC3339, форматы "2006-01-02 15:04:05" и "2006-01-02" (UTC)
// и целое число миллисекунд.
func ParseTimestamp(s string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.ParseInLocation(time.DateTime, s, time.UTC); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.UTC); err == nil {
		return t.UnixMilli(), nil
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ts, nil
	}
	return 0, fmt.Errorf("невозможно разобрать время из %q", s)
}

// PathExists проверяет существует ли путь
func PathExists(path string) bool {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false
	}
	return true
}
