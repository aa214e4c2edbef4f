package series

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	src := NewTable(path, "Open Time")
	src.AddTime("Open Time", []int64{1704153600000, 1704157200000})
	src.Add("Close", []float64{42.5, 43})
	src.Add("RSI14", []float64{math.NaN(), 55.25})

	if err := SaveCSV(path, src); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Columns(), []string{"Open Time", "Close", "RSI14"}) {
		t.Errorf("Columns: got %v", got.Columns())
	}
	if got.Key() != "Open Time" {
		t.Errorf("Key: got %q", got.Key())
	}
	if !slices.Equal(got.KeyTimes(), []int64{1704153600000, 1704157200000}) {
		t.Errorf("KeyTimes: got %v", got.KeyTimes())
	}
	rsi, _ := got.Values("RSI14")
	if !math.IsNaN(rsi[0]) {
		t.Errorf("NaN cell: got %v, want NaN", rsi[0])
	}
	if rsi[1] != 55.25 {
		t.Errorf("RSI14[1]: got %v, want 55.25", rsi[1])
	}
}

func TestSaveCSVFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")

	src := NewTable(path, "Open Time")
	src.AddTime("Open Time", []int64{1704153600000})
	src.Add("Close", []float64{math.NaN()})
	if err := SaveCSV(path, src); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	want := []string{"Open Time,Close", "2024-01-02T00:00:00Z,"}
	if !slices.Equal(lines, want) {
		t.Errorf("file lines: got %v, want %v", lines, want)
	}
}

func TestLoadCSVMixedTimeFormats(t *testing.T) {
	// Each cell is parsed on its own, formats can vary between rows
	path := filepath.Join(t.TempDir(), "mixed.csv")
	writeFile(t, path, "Open Time,Close\n"+
		"2024-01-02T00:00:00Z,1\n"+
		"2024-01-02 01:00:00,2\n"+
		"2024-01-02,3\n"+
		"1704164400000,4\n")

	got, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{1704153600000, 1704157200000, 1704153600000, 1704164400000}
	if !slices.Equal(got.KeyTimes(), want) {
		t.Errorf("KeyTimes: got %v, want %v", got.KeyTimes(), want)
	}
}

func TestLoadCSVKeySelection(t *testing.T) {
	// Without "Open Time" the first time-like column becomes the key
	path := filepath.Join(t.TempDir(), "alt.csv")
	writeFile(t, path, "Timestamp,Value\n1000,1\n")

	got, err := LoadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Key() != "Timestamp" {
		t.Errorf("Key: got %q, want Timestamp", got.Key())
	}
}

func TestLoadCSVMalformedCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	writeFile(t, path, "Open Time,Close\n1000,abc\n")

	_, err := LoadCSV(path)
	if err == nil {
		t.Fatal("expected error for malformed cell")
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), "Close") {
		t.Errorf("error should name file and column: %v", err)
	}
}

func TestLoadCSVDuplicateHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.csv")
	writeFile(t, path, "Open Time,Close,Close\n1000,1,2\n")

	if _, err := LoadCSV(path); err == nil {
		t.Fatal("expected error for duplicate header")
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, path, "")

	if _, err := LoadCSV(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}

func TestListCSVFilesAndHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.csv"), "Open Time,Close\n")
	writeFile(t, filepath.Join(dir, "b.txt"), "not csv")
	if err := os.Mkdir(filepath.Join(dir, "c.csv"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListCSVFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(files, []string{"a.csv"}) {
		t.Errorf("files: got %v, want [a.csv]", files)
	}

	header, err := CSVHeader(filepath.Join(dir, "a.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(header, []string{"Open Time", "Close"}) {
		t.Errorf("header: got %v", header)
	}
}
