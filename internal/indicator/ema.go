package indicator

// ComputeEMA возвращает экспоненциальное скользящее среднее ряда:
// ema[0] = s[0], ema[t] = alpha*s[t] + (1-alpha)*ema[t-1],
// где alpha = 2/(span+1). Прогрева нет, ряд определен с первого элемента.
func ComputeEMA(s []float64, span int) []float64 {
	ema := make([]float64, len(s))
	if len(s) == 0 {
		return ema
	}
	alpha := 2 / float64(span+1)
	ema[0] = s[0]
	for t := 1; t < len(s); t++ {
		ema[t] = alpha*s[t] + (1-alpha)*ema[t-1]
	}
	return ema
}
