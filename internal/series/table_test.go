package series

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/nikita55612/goDatasetMaker/internal/cdl"
)

func testTable(t *testing.T, times []int64, cols map[string][]float64, order []string) *Table {
	t.Helper()
	tb := NewTable("test", "Open Time")
	tb.AddTime("Open Time", times)
	for _, name := range order {
		tb.Add(name, cols[name])
	}
	return tb
}

func TestTableLenAndColumns(t *testing.T) {
	tb := testTable(t,
		[]int64{1, 2, 3},
		map[string][]float64{"A": {1, 2, 3}, "B": {4, 5, 6}},
		[]string{"A", "B"},
	)
	if tb.Len() != 3 {
		t.Errorf("Len: got %d, want 3", tb.Len())
	}
	if got := tb.Columns(); !slices.Equal(got, []string{"Open Time", "A", "B"}) {
		t.Errorf("Columns: got %v", got)
	}
	if tb.Key() != "Open Time" {
		t.Errorf("Key: got %q", tb.Key())
	}
}

func TestTableOwnsCopies(t *testing.T) {
	values := []float64{1, 2}
	tb := NewTable("test", "Open Time")
	tb.AddTime("Open Time", []int64{10, 20})
	tb.Add("A", values)

	values[0] = 99
	got, _ := tb.Values("A")
	if got[0] != 1 {
		t.Errorf("table shares caller slice: got %v, want 1", got[0])
	}
}

func TestTableAddDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate column")
		}
	}()
	tb := NewTable("test", "Open Time")
	tb.Add("A", []float64{1})
	tb.Add("A", []float64{2})
}

func TestTableAddLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	tb := NewTable("test", "Open Time")
	tb.Add("A", []float64{1, 2})
	tb.Add("B", []float64{1})
}

func TestTableTimesValuesKindMismatch(t *testing.T) {
	tb := testTable(t, []int64{1}, map[string][]float64{"A": {1}}, []string{"A"})
	if _, ok := tb.Values("Open Time"); ok {
		t.Error("Values on time column: got ok=true")
	}
	if _, ok := tb.Times("A"); ok {
		t.Error("Times on numeric column: got ok=true")
	}
	if _, ok := tb.Values("missing"); ok {
		t.Error("Values on missing column: got ok=true")
	}
}

func TestTableRequire(t *testing.T) {
	tb := testTable(t, []int64{1}, map[string][]float64{"A": {1}}, []string{"A"})
	if err := tb.Require("Open Time", "A"); err != nil {
		t.Errorf("Require present columns: %v", err)
	}

	err := tb.Require("A", "B", "C")
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("Require: got %T, want *FormatError", err)
	}
	if !slices.Equal(fe.Missing, []string{"B", "C"}) {
		t.Errorf("Missing: got %v, want [B C]", fe.Missing)
	}
}

func TestRows(t *testing.T) {
	tb := testTable(t,
		[]int64{10, 20, 30},
		map[string][]float64{"A": {1, 2, 3}, "B": {4, 5, 6}},
		[]string{"A", "B"},
	)

	var times []int64
	for row := range tb.Rows(0, 3) {
		times = append(times, row.Time)
		if !slices.Equal(row.Values.Keys(), []string{"A", "B"}) {
			t.Errorf("row keys: got %v, want [A B]", row.Values.Keys())
		}
	}
	if !slices.Equal(times, []int64{10, 20, 30}) {
		t.Errorf("row times: got %v", times)
	}

	// The sequence is restartable and excludes rows outside [from, to)
	seq := tb.Rows(1, 2)
	for range 2 {
		count := 0
		for row := range seq {
			count++
			if row.Time != 20 {
				t.Errorf("row time: got %d, want 20", row.Time)
			}
			if a, _ := row.Values.Get("A"); a != 2 {
				t.Errorf("row value A: got %v, want 2", a)
			}
		}
		if count != 1 {
			t.Errorf("rows in [1,2): got %d, want 1", count)
		}
	}
}

func TestRowsClampsBounds(t *testing.T) {
	tb := testTable(t, []int64{10, 20}, map[string][]float64{"A": {1, 2}}, []string{"A"})
	count := 0
	for range tb.Rows(-5, 100) {
		count++
	}
	if count != 2 {
		t.Errorf("clamped rows: got %d, want 2", count)
	}
}

func TestRowsEarlyBreak(t *testing.T) {
	tb := testTable(t, []int64{10, 20, 30}, map[string][]float64{"A": {1, 2, 3}}, []string{"A"})
	count := 0
	for range tb.Rows(0, 3) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("early break: got %d iterations, want 1", count)
	}
}

func TestDropUndefined(t *testing.T) {
	nan := math.NaN()
	tb := testTable(t,
		[]int64{10, 20, 30, 40},
		map[string][]float64{"A": {nan, 2, 3, 4}, "B": {1, 2, nan, 4}},
		[]string{"A", "B"},
	)

	got := tb.DropUndefined()
	if !slices.Equal(got.KeyTimes(), []int64{20, 40}) {
		t.Errorf("KeyTimes: got %v, want [20 40]", got.KeyTimes())
	}
	a, _ := got.Values("A")
	if !slices.Equal(a, []float64{2, 4}) {
		t.Errorf("A: got %v, want [2 4]", a)
	}
	// The source table is left untouched
	if tb.Len() != 4 {
		t.Errorf("source Len after DropUndefined: got %d, want 4", tb.Len())
	}
}

func TestFromCandlesToCandlesRoundTrip(t *testing.T) {
	candles := []cdl.Candle{
		{Time: 1000, O: 1, H: 2, L: 0.5, C: 1.5, Volume: 10, Turnover: 15},
		{Time: 2000, O: 1.5, H: 3, L: 1, C: 2.5, Volume: 20, Turnover: 50},
	}
	tb := FromCandles("test", candles)
	if got := tb.Columns(); !slices.Equal(got, cdl.CSVHeader[:]) {
		t.Errorf("Columns: got %v", got)
	}

	back, err := ToCandles(tb)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back, candles) {
		t.Errorf("round trip: got %+v, want %+v", back, candles)
	}
}

func TestToCandlesMissingColumns(t *testing.T) {
	tb := testTable(t, []int64{1}, map[string][]float64{"Close": {1}}, []string{"Close"})
	_, err := ToCandles(tb)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %T, want *FormatError", err)
	}
	if !slices.Contains(fe.Missing, "Open") {
		t.Errorf("Missing: got %v, want Open included", fe.Missing)
	}
}

func TestToCandlesWithoutTurnover(t *testing.T) {
	tb := NewTable("test", "Open Time")
	tb.AddTime("Open Time", []int64{1000})
	for _, name := range cdl.CSVHeader[1:6] {
		tb.Add(name, []float64{2})
	}
	candles, err := ToCandles(tb)
	if err != nil {
		t.Fatal(err)
	}
	if candles[0].Turnover != 0 {
		t.Errorf("Turnover without column: got %v, want 0", candles[0].Turnover)
	}
}
