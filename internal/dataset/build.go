package dataset

import (
	"errors"
	"fmt"

	"github.com/nikita55612/goDatasetMaker/internal/series"
)

// ErrNotEnoughRows возвращается, когда выровненных строк не хватает
// даже на один фрейм
var ErrNotEnoughRows = errors.New("недостаточно строк для построения фреймов")

// BuildFrames выравнивает таблицы свечей и индикаторов по ключевой колонке
// времени и нарезает их на перекрывающиеся фреймы с шагом в одну строку.
// Фрейм i несет windowSize снимков индикаторов строк [i, i+windowSize)
// и метку (close[i+windowSize+targetDistance-1] - close[i]) / close[i].
// Фреймы с пустыми снимками остаются в результате и отбраковываются
// при сериализации.
func BuildFrames(bars, indicators *series.Table, windowSize, targetDistance int) ([]Frame, error) {
	if windowSize <= 0 || targetDistance <= 0 {
		return nil, fmt.Errorf(
			"dataset: размер окна и дистанция цели должны быть положительными, получены %d и %d",
			windowSize, targetDistance,
		)
	}
	if err := bars.Require("Close"); err != nil {
		return nil, err
	}
	alignedBars, alignedInd, err := series.Align(bars, indicators)
	if err != nil {
		return nil, err
	}
	n := alignedBars.Len()
	count := n - windowSize - targetDistance + 1
	if count <= 0 {
		return nil, fmt.Errorf(
			"dataset: %w: строк %d, окно %d, дистанция %d",
			ErrNotEnoughRows, n, windowSize, targetDistance,
		)
	}
	closes, _ := alignedBars.Values("Close")
	times := alignedBars.KeyTimes()

	frames := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		end := i + windowSize + targetDistance - 1
		snapshots := make([]Snapshot, 0, windowSize)
		for row := range alignedInd.Rows(i, i+windowSize) {
			snapshots = append(snapshots, Snapshot{Time: row.Time, Values: row.Values})
		}
		startPrice := closes[i]
		frames = append(frames, Frame{
			StartTime:      times[i],
			WindowSize:     windowSize,
			TargetDistance: targetDistance,
			TargetTime:     times[end],
			Indicators:     snapshots,
			Target:         (closes[end] - startPrice) / startPrice,
		})
	}
	return frames, nil
}
