package dataset

import (
	"github.com/nikita55612/goDatasetMaker/internal/utils/seqs"
)

// Snapshot - значения индикаторов на один момент времени окна
type Snapshot struct {
	Time   int64
	Values *seqs.OrderedMap[string, float64]
}

// Frame - один обучающий пример: окно снимков индикаторов и метка
// будущего изменения цены. После создания не изменяется.
type Frame struct {
	StartTime      int64
	WindowSize     int
	TargetDistance int
	TargetTime     int64
	Indicators     []Snapshot
	Target         float64
}

// IsValid сообщает, пригоден ли фрейм для выгрузки: снимок с пустым
// набором значений делает фрейм недействительным
func (f *Frame) IsValid() bool {
	for i := range f.Indicators {
		v := f.Indicators[i].Values
		if v == nil || v.Len() == 0 {
			return false
		}
	}
	return true
}
