package dataset

import (
	"encoding/json"
	"os"
)

const DefaultConfigPath = "./config.json"

type Config struct {
	Periods          []int    `json:"periods"`
	MACDFast         int      `json:"macdFast"`
	MACDSlow         int      `json:"macdSlow"`
	MACDSignal       int      `json:"macdSignal"`
	WindowSize       int      `json:"windowSize"`
	TargetDistance   int      `json:"targetDistance"`
	IndicatorHeaders []string `json:"indicatorHeaders"`
}

func DefaultConfig() *Config {
	return &Config{
		Periods:          []int{7, 14, 21},
		MACDFast:         12,
		MACDSlow:         26,
		MACDSignal:       9,
		WindowSize:       14,
		TargetDistance:   14,
		IndicatorHeaders: []string{"SMA14", "RSI14"},
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
