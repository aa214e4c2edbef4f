package series

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/utils/tools"
)

// временные колонки распознаются по подстроке "time" в имени
func isTimeColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "time")
}

// LoadCSV читает CSV файл в таблицу. Колонки, имя которых содержит "time",
// разбираются как временные (RFC3339, "2006-01-02 15:04:05", "2006-01-02"
// или Unix мс), остальные - как float64, пустая ячейка становится NaN.
// Ключевой колонкой назначается "Open Time", если она есть, иначе первая
// временная колонка.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("series: не удалось открыть %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("series: не удалось прочитать %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("series: файл %s пуст", path)
	}
	header := records[0]
	rows := records[1:]

	seen := make(map[string]bool, len(header))
	key := ""
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("series: файл %s содержит дубликат колонки %q", path, name)
		}
		seen[name] = true
		if isTimeColumn(name) && (key == "" || name == cdl.CSVHeader[0]) {
			key = name
		}
	}

	t := NewTable(path, key)
	for j, name := range header {
		if isTimeColumn(name) {
			times := make([]int64, len(rows))
			for i, row := range rows {
				ts, err := tools.ParseTimestamp(row[j])
				if err != nil {
					return nil, fmt.Errorf("series: %s, строка %d, колонка %q: %w", path, i+2, name, err)
				}
				times[i] = ts
			}
			t.AddTime(name, times)
			continue
		}
		values := make([]float64, len(rows))
		for i, row := range rows {
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				values[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("series: %s, строка %d, колонка %q: %w", path, i+2, name, err)
			}
			values[i] = v
		}
		t.Add(name, values)
	}
	return t, nil
}

// SaveCSV записывает таблицу в CSV файл. Временные колонки выводятся
// в RFC3339 (UTC), NaN - пустой ячейкой.
func SaveCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("series: не удалось создать %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns()); err != nil {
		return err
	}
	record := make([]string, len(t.cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range t.cols {
			switch {
			case c.isTime:
				record[j] = tools.TimestampToString(c.times[i])
			case math.IsNaN(c.values[i]):
				record[j] = ""
			default:
				record[j] = strconv.FormatFloat(c.values[i], 'f', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ListCSVFiles возвращает имена CSV файлов директории
func ListCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// CSVHeader читает заголовок CSV файла
func CSVHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).Read()
}
