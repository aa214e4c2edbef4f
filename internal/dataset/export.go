package dataset

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/nikita55612/goDatasetMaker/internal/utils/slogx"
	"github.com/nikita55612/goDatasetMaker/internal/utils/tools"
)

// asJSON собирает JSON представление фрейма по схеме выходного датасета
func (f *Frame) asJSON() Value {
	indicators := make(Array, 0, len(f.Indicators))
	for i := range f.Indicators {
		snap := &f.Indicators[i]
		obj := NewObject().Set("timestamp", String(tools.TimestampToString(snap.Time)))
		for _, name := range snap.Values.Keys() {
			v, _ := snap.Values.Get(name)
			obj.Set(name, Number(v))
		}
		indicators = append(indicators, obj)
	}
	return NewObject().
		Set("start", String(tools.TimestampToString(f.StartTime))).
		Set("window_size", Int(int64(f.WindowSize))).
		Set("target_distance", Int(int64(f.TargetDistance))).
		Set("target_time", String(tools.TimestampToString(f.TargetTime))).
		Set("indicators", indicators).
		Set("target_evolution", Number(f.Target))
}

// ExportJSON потоково выводит фреймы одним JSON массивом в w.
// Недействительные фреймы пропускаются с диагностикой их начального
// времени. Разделитель пишется перед каждым элементом после первого,
// замыкающей запятой не бывает. Возвращает количество выведенных фреймов.
func ExportJSON(w io.Writer, frames []Frame, logger *slogx.AsyncSlog) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("[\n"); err != nil {
		return 0, err
	}
	var written int
	for i := range frames {
		frame := &frames[i]
		if !frame.IsValid() {
			if logger != nil {
				logger.Log(
					slog.LevelWarn,
					"skipping frame due to missing indicator values",
					"start", tools.TimestampToString(frame.StartTime),
				)
			}
			continue
		}
		if written > 0 {
			if _, err := bw.WriteString(",\n"); err != nil {
				return written, err
			}
		}
		if err := WriteValue(bw, frame.asJSON()); err != nil {
			return written, err
		}
		written++
	}
	if written > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return written, err
		}
	}
	if _, err := bw.WriteString("]\n"); err != nil {
		return written, err
	}
	return written, bw.Flush()
}
