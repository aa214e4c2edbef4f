package dataset

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/nikita55612/goDatasetMaker/internal/utils/seqs"
)

func snapshot(ts int64, pairs ...any) Snapshot {
	values := seqs.NewOrderedMap[string, float64](len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		values.Set(pairs[i].(string), pairs[i+1].(float64))
	}
	return Snapshot{Time: ts, Values: values}
}

func testFrame(start int64, target float64, snaps ...Snapshot) Frame {
	return Frame{
		StartTime:      start,
		WindowSize:     len(snaps),
		TargetDistance: 1,
		TargetTime:     start + int64(len(snaps))*60_000,
		Indicators:     snaps,
		Target:         target,
	}
}

func TestExportJSON(t *testing.T) {
	const base = int64(1700000000000)
	frames := []Frame{
		testFrame(base, 0.01,
			snapshot(base, "RSI14", 55.0, "SMA14", -1.25),
			snapshot(base+60_000, "RSI14", 60.5, "SMA14", 0.75),
		),
		testFrame(base+60_000, -0.02,
			snapshot(base+60_000, "RSI14", 60.5, "SMA14", 0.75),
			snapshot(base+120_000, "RSI14", 48.0, "SMA14", 2.0),
		),
	}

	var buf bytes.Buffer
	written, err := ExportJSON(&buf, frames, nil)
	if err != nil {
		t.Fatal(err)
	}
	if written != 2 {
		t.Errorf("written: got %d, want 2", written)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "[\n") || !strings.HasSuffix(out, "\n]\n") {
		t.Errorf("array framing: got %q...%q", out[:2], out[len(out)-3:])
	}

	// The output must stay parseable by a standard JSON decoder
	var decoded []struct {
		Start          string           `json:"start"`
		WindowSize     int              `json:"window_size"`
		TargetDistance int              `json:"target_distance"`
		TargetTime     string           `json:"target_time"`
		Indicators     []map[string]any `json:"indicators"`
		Target         float64          `json:"target_evolution"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded frames: got %d, want 2", len(decoded))
	}
	first := decoded[0]
	if first.Start != "2023-11-14T22:13:20Z" {
		t.Errorf("start: got %q", first.Start)
	}
	if first.WindowSize != 2 || first.TargetDistance != 1 {
		t.Errorf("window/distance: got %d/%d, want 2/1", first.WindowSize, first.TargetDistance)
	}
	if first.Target != 0.01 {
		t.Errorf("target_evolution: got %v, want 0.01", first.Target)
	}
	if decoded[1].Target != -0.02 {
		t.Errorf("second target_evolution: got %v, want -0.02", decoded[1].Target)
	}
	if len(first.Indicators) != 2 {
		t.Fatalf("indicators: got %d, want 2", len(first.Indicators))
	}
	if got := first.Indicators[0]["RSI14"]; got != 55.0 {
		t.Errorf("RSI14: got %v, want 55", got)
	}
	if got := first.Indicators[0]["timestamp"]; got != "2023-11-14T22:13:20Z" {
		t.Errorf("timestamp: got %v", got)
	}
}

func TestExportJSONFieldOrder(t *testing.T) {
	frames := []Frame{testFrame(1700000000000, 0.5, snapshot(1700000000000, "RSI14", 55.0))}

	var buf bytes.Buffer
	if _, err := ExportJSON(&buf, frames, nil); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	fields := []string{`"start"`, `"window_size"`, `"target_distance"`, `"target_time"`, `"indicators"`, `"target_evolution"`}
	prev := -1
	for _, f := range fields {
		i := strings.Index(out, f)
		if i < 0 {
			t.Fatalf("field %s missing in output", f)
		}
		if i < prev {
			t.Errorf("field %s out of order", f)
		}
		prev = i
	}

	// The snapshot timestamp precedes the indicator values
	if strings.Index(out, `"timestamp"`) > strings.Index(out, `"RSI14"`) {
		t.Error("timestamp must precede indicator values")
	}
	if !strings.Contains(out, `"window_size": 1`) {
		t.Errorf("member format: got %s", out)
	}
}

func TestExportJSONSkipsInvalidFrames(t *testing.T) {
	valid := testFrame(1000, 0.1, snapshot(1000, "RSI14", 50.0))
	invalid := Frame{StartTime: 2000, WindowSize: 1, TargetDistance: 1,
		Indicators: []Snapshot{{Time: 2000, Values: seqs.NewOrderedMap[string, float64](0)}}}

	// The invalid frame comes last: no separator may trail the valid one
	var buf bytes.Buffer
	written, err := ExportJSON(&buf, []Frame{valid, invalid}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if written != 1 {
		t.Errorf("written: got %d, want 1", written)
	}
	var decoded []any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Errorf("decoded frames: got %d, want 1", len(decoded))
	}

	// Invalid frame in the middle
	buf.Reset()
	written, err = ExportJSON(&buf, []Frame{valid, invalid, valid}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if written != 2 {
		t.Errorf("written: got %d, want 2", written)
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("decoded frames: got %d, want 2", len(decoded))
	}
}

func TestExportJSONAllInvalid(t *testing.T) {
	invalid := Frame{StartTime: 1000, Indicators: []Snapshot{{Time: 1000}}}

	var buf bytes.Buffer
	written, err := ExportJSON(&buf, []Frame{invalid}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if written != 0 {
		t.Errorf("written: got %d, want 0", written)
	}
	if buf.String() != "[\n]\n" {
		t.Errorf("empty array: got %q", buf.String())
	}
}

func TestExportJSONUndefinedValues(t *testing.T) {
	frames := []Frame{testFrame(1000, math.NaN(), snapshot(1000, "RSI14", math.NaN()))}

	var buf bytes.Buffer
	if _, err := ExportJSON(&buf, frames, nil); err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded[0]["target_evolution"] != nil {
		t.Errorf("NaN target: got %v, want null", decoded[0]["target_evolution"])
	}
	snap := decoded[0]["indicators"].([]any)[0].(map[string]any)
	if snap["RSI14"] != nil {
		t.Errorf("NaN value: got %v, want null", snap["RSI14"])
	}
}

func TestWriteValue(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Number(55), "55"},
		{Number(0.01), "0.01"},
		{Number(-1.25), "-1.25"},
		{Number(math.NaN()), "null"},
		{Number(math.Inf(1)), "null"},
		{Int(42), "42"},
		{Null{}, "null"},
		{String("plain"), `"plain"`},
		{String("a\"b\\c\nd"), `"a\"b\\c\nd"`},
		{String("\x01"), `"\u0001"`},
		{Array{Int(1), Int(2)}, "[1,2]"},
		{Array{}, "[]"},
		{NewObject(), "{}"},
		{NewObject().Set("a", Int(1)).Set("b", String("x")), `{"a": 1,"b": "x"}`},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		if err := WriteValue(&buf, c.v); err != nil {
			t.Errorf("WriteValue(%#v): %v", c.v, err)
			continue
		}
		if buf.String() != c.want {
			t.Errorf("WriteValue(%#v): got %q, want %q", c.v, buf.String(), c.want)
		}
	}
}
