package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nikita55612/goDatasetMaker/internal/broker"
	"github.com/nikita55612/goDatasetMaker/internal/broker/binance"
	"github.com/nikita55612/goDatasetMaker/internal/cdl"
	"github.com/nikita55612/goDatasetMaker/internal/dataset"
	"github.com/nikita55612/goDatasetMaker/internal/indicator"
	"github.com/nikita55612/goDatasetMaker/internal/series"
	"github.com/nikita55612/goDatasetMaker/internal/utils/slogx"
	"github.com/nikita55612/goDatasetMaker/internal/utils/tools"
)

const usage = `goDatasetMaker - подготовка обучающего датасета из свечных данных

Usage:
  goDatasetMaker <command> [flags]

Commands:
  fetch       загрузка исторических свечей Binance в CSV
  stream      дозапись подтвержденных свечей из WebSocket потока в CSV
  indicators  расчет индикаторов по свечному CSV
  frames      нарезка фреймов и экспорт датасета в JSON

Флаги команды: goDatasetMaker <command> -h
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ctx, stop := signal.NotifyContext(ctx,
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slogx.NewAsyncSlog(ctx, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	var err error
	switch os.Args[1] {
	case "fetch":
		err = runFetch(ctx, os.Args[2:], logger)
	case "stream":
		err = runStream(ctx, os.Args[2:], logger)
	case "indicators":
		err = runIndicators(os.Args[2:], logger)
	case "frames":
		err = runFrames(os.Args[2:], logger)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("неизвестная команда: %s\n\n", os.Args[1])
		fmt.Print(usage)
	}
	if err != nil {
		fmt.Println(err)
	}

	cancel()
	time.Sleep(time.Second)
	if err != nil {
		os.Exit(1)
	}
}

// runFetch загружает исторические свечи и сохраняет их в CSV файл
func runFetch(ctx context.Context, args []string, logger *slogx.AsyncSlog) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	symbol := fs.String("symbol", "", "торговая пара, например BTCUSDT")
	intervalArg := fs.String("interval", "H1", "интервал свечей (M1..D30 или 1m..1M)")
	start := fs.String("start", "", "начало истории: 2006-01-02, RFC3339 или Unix мс")
	limit := fs.Int("limit", 0, "количество последних свечей вместо -start")
	out := fs.String("out", "", "путь выходного CSV файла")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *symbol == "" {
		return fmt.Errorf("не указан -symbol")
	}
	interval, err := cdl.ParseInterval(*intervalArg)
	if err != nil {
		return err
	}
	if *start == "" && *limit <= 0 {
		return fmt.Errorf("укажите -start или -limit")
	}

	cli := binance.NewClientFromEnv(binance.WithContext(ctx))
	var provider broker.CandleProvider = cli

	logger.Log(slog.LevelInfo, "fetching candles",
		"symbol", *symbol,
		"interval", string(interval),
	)
	var candles []cdl.Candle
	if *start != "" {
		startTs, err := tools.ParseTimestamp(*start)
		if err != nil {
			return err
		}
		candles, err = provider.GetCandlesFrom(*symbol, interval, startTs)
		if err != nil {
			return err
		}
	} else {
		candles, err = provider.GetCandles(*symbol, interval, *limit)
		if err != nil {
			return err
		}
	}
	if len(candles) == 0 {
		return fmt.Errorf("не получено ни одной свечи")
	}

	path := *out
	if path == "" {
		path = defaultCandleFile(*symbol, interval)
	}
	if err := series.SaveCSV(path, series.FromCandles(*symbol, candles)); err != nil {
		return err
	}
	fmt.Printf("Data saved to %s (%d candles)\n", path, len(candles))
	return nil
}

// runStream дозаписывает подтвержденные свечи из потока в CSV файл
func runStream(ctx context.Context, args []string, logger *slogx.AsyncSlog) error {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	symbol := fs.String("symbol", "", "торговая пара, например BTCUSDT")
	intervalArg := fs.String("interval", "H1", "интервал свечей (M1..D30 или 1m..1M)")
	out := fs.String("out", "", "путь CSV файла для дозаписи")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *symbol == "" {
		return fmt.Errorf("не указан -symbol")
	}
	interval, err := cdl.ParseInterval(*intervalArg)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = defaultCandleFile(*symbol, interval)
	}

	cli := binance.NewClientFromEnv(binance.WithContext(ctx))
	return recordStream(ctx, cli, *symbol, interval, path, logger)
}

// recordStream пишет подтвержденные свечи провайдера в CSV файл до отмены
// контекста. Существующий файл продолжается с последней записанной свечи.
func recordStream(
	ctx context.Context,
	provider broker.CandleProvider,
	symbol string,
	interval cdl.Interval,
	path string,
	logger *slogx.AsyncSlog,
) error {
	var lastTime int64
	if tools.PathExists(path) {
		table, err := series.LoadCSV(path)
		if err != nil {
			return err
		}
		candles, err := series.ToCandles(table)
		if err != nil {
			return err
		}
		if len(candles) > 0 {
			lastTime = candles[len(candles)-1].Time
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fi, err := f.Stat(); err == nil && fi.Size() == 0 {
		if err := w.Write(cdl.CSVHeader[:]); err != nil {
			return err
		}
		w.Flush()
	}
	appendFn := func(candles ...cdl.Candle) error {
		for i := range candles {
			record := candles[i].AsArr()[:]
			// время в том же виде, что пишет SaveCSV
			record[0] = tools.TimestampToString(candles[i].Time)
			if err := w.Write(record); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	}

	fmt.Printf("Recording %s %s candles to %s (Ctrl-C to stop)\n", symbol, interval, path)
	recorder := cdl.NewRecorder(ctx, symbol, interval, lastTime, provider, appendFn, logger)
	return recorder.Run()
}

// runIndicators считает индикаторы по свечному CSV и сохраняет
// объединенную таблицу
func runIndicators(args []string, logger *slogx.AsyncSlog) error {
	fs := flag.NewFlagSet("indicators", flag.ExitOnError)
	file := fs.String("file", "", "CSV файл свечей (пустой - выбор из меню)")
	configPath := fs.String("config", "", "путь к JSON конфигурации")
	out := fs.String("out", "", "путь выходного CSV файла")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	filename := *file
	if filename == "" {
		fmt.Println("Please select the file containing the candlestick data.")
		if filename, err = promptFileChoice(cdl.CSVHeader[:6]); err != nil {
			return err
		}
		if filename == "" {
			return nil
		}
	}
	table, err := series.LoadCSV(filename)
	if err != nil {
		return err
	}
	if err := table.Require(cdl.CSVHeader[:6]...); err != nil {
		return err
	}
	candles, err := series.ToCandles(table)
	if err != nil {
		return err
	}

	combined, err := computeIndicators(candles, cfg, logger)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		pair := strings.SplitN(filepath.Base(filename), "_", 2)[0]
		path = pair + "_indicators.csv"
	}
	if err := series.SaveCSV(path, combined); err != nil {
		return err
	}
	fmt.Printf("Data saved to %s (%d rows)\n", path, combined.Len())
	return nil
}

// computeIndicators считает все индикаторы конфигурации и объединяет их
// таблицы по общей колонке времени. Строки прогрева каждого индикатора
// отбрасываются до объединения.
func computeIndicators(candles []cdl.Candle, cfg *dataset.Config, logger *slogx.AsyncSlog) (*series.Table, error) {
	rsi, err := indicator.Compute(indicator.RSI, candles, cfg.Periods)
	if err != nil {
		return nil, err
	}
	logger.Log(slog.LevelInfo, "indicator computed", "kind", "RSI")

	adx, err := indicator.Compute(indicator.ADX, candles, cfg.Periods)
	if err != nil {
		return nil, err
	}
	logger.Log(slog.LevelInfo, "indicator computed", "kind", "ADX")

	sma, err := indicator.Compute(indicator.SMA, candles, cfg.Periods)
	if err != nil {
		return nil, err
	}
	smaScaled, err := indicator.ScaleSMA(sma.DropUndefined())
	if err != nil {
		return nil, err
	}
	logger.Log(slog.LevelInfo, "indicator computed", "kind", "SMA")

	macd, err := indicator.ComputeMACD(candles, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
	if err != nil {
		return nil, err
	}
	macdScaled, err := indicator.ScaleMACD(macd.DropUndefined())
	if err != nil {
		return nil, err
	}
	logger.Log(slog.LevelInfo, "indicator computed", "kind", "MACD")

	return series.Combine(rsi.DropUndefined(), adx.DropUndefined(), smaScaled, macdScaled)
}

// runFrames нарезает свечи и индикаторы на фреймы и выгружает их в JSON
func runFrames(args []string, logger *slogx.AsyncSlog) error {
	fs := flag.NewFlagSet("frames", flag.ExitOnError)
	barsFile := fs.String("bars", "", "CSV файл свечей (пустой - выбор из меню)")
	indFile := fs.String("indicators", "", "CSV файл индикаторов (пустой - выбор из меню)")
	out := fs.String("out", "", "путь выходного JSON файла (пустой - запрос)")
	window := fs.Int("window", 0, "размер окна, 0 - из конфигурации")
	distance := fs.Int("distance", 0, "дистанция цели, 0 - из конфигурации")
	configPath := fs.String("config", "", "путь к JSON конфигурации")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	windowSize := *window
	if windowSize == 0 {
		windowSize = cfg.WindowSize
	}
	targetDistance := *distance
	if targetDistance == 0 {
		targetDistance = cfg.TargetDistance
	}

	barsPath := *barsFile
	if barsPath == "" {
		fmt.Println("Please select the file containing the candlestick data.")
		if barsPath, err = promptFileChoice(cdl.CSVHeader[:6]); err != nil {
			return err
		}
		if barsPath == "" {
			return nil
		}
	}
	indPath := *indFile
	if indPath == "" {
		fmt.Println("Please select the file containing the corresponding indicators data.")
		headers := append([]string{cdl.CSVHeader[0]}, cfg.IndicatorHeaders...)
		if indPath, err = promptFileChoice(headers); err != nil {
			return err
		}
		if indPath == "" {
			return nil
		}
	}

	bars, err := series.LoadCSV(barsPath)
	if err != nil {
		return err
	}
	if err := bars.Require(cdl.CSVHeader[:6]...); err != nil {
		return err
	}
	indicators, err := series.LoadCSV(indPath)
	if err != nil {
		return err
	}
	if err := indicators.Require(cdl.CSVHeader[0]); err != nil {
		return err
	}

	frames, err := dataset.BuildFrames(bars, indicators, windowSize, targetDistance)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		fmt.Println("Please enter the filename for the JSON output.")
		if path = promptLine("> "); path == "" {
			return fmt.Errorf("не указано имя выходного файла")
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	written, err := dataset.ExportJSON(f, frames, logger)
	if err != nil {
		return err
	}
	fmt.Printf("JSON data saved to %s (%d/%d frames)\n", path, written, len(frames))
	return nil
}

// loadConfig загружает конфигурацию или возвращает значения по умолчанию,
// если путь не задан и файла по умолчанию нет
func loadConfig(path string) (*dataset.Config, error) {
	if path == "" && !tools.PathExists(dataset.DefaultConfigPath) {
		return dataset.DefaultConfig(), nil
	}
	return dataset.LoadConfig(path)
}

func defaultCandleFile(symbol string, interval cdl.Interval) string {
	return fmt.Sprintf("%s_%s_candlestick_data.csv", symbol, binance.AsLocalInterval(interval))
}

var stdinScanner = bufio.NewScanner(os.Stdin)

func promptLine(prompt string) string {
	fmt.Print(prompt)
	if !stdinScanner.Scan() {
		return ""
	}
	return strings.TrimSpace(stdinScanner.Text())
}

// promptFileChoice выводит нумерованный список CSV файлов текущей
// директории, заголовок которых содержит все обязательные колонки,
// и запрашивает выбор. Пустой результат без ошибки - пользователь вышел (0).
func promptFileChoice(headers []string) (string, error) {
	files, err := series.ListCSVFiles(".")
	if err != nil {
		return "", err
	}
	var valid []string
	for _, file := range files {
		header, err := series.CSVHeader(file)
		if err != nil {
			continue
		}
		if containsAll(header, headers) {
			valid = append(valid, file)
		}
	}
	if len(valid) == 0 {
		return "", fmt.Errorf("no valid CSV files found in the current directory")
	}

	fmt.Println("CSV files in the current directory:")
	for i, file := range valid {
		fmt.Printf("%d. %s\n", i+1, file)
	}
	for {
		line := promptLine("Select the file number to process (or 0 to exit): ")
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Println("Invalid input. Please enter a number.")
			continue
		}
		if choice == 0 {
			return "", nil
		}
		if choice >= 1 && choice <= len(valid) {
			return valid[choice-1], nil
		}
		fmt.Printf("Invalid choice. Please select a number between 1 and %d.\n", len(valid))
	}
}

func containsAll(header, required []string) bool {
	for _, name := range required {
		if !slices.Contains(header, name) {
			return false
		}
	}
	return true
}
