// Package config reads the session parameters from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samdwyer/mazebroker/internal/gamedata"
)

// Environment variable names.
const (
	EnvWidth        = "MAZEBROKER_WIDTH"
	EnvHeight       = "MAZEBROKER_HEIGHT"
	EnvInitialPrice = "MAZEBROKER_INITIAL_PRICE"
	EnvInitialCash  = "MAZEBROKER_INITIAL_CASH"
	EnvAssets       = "MAZEBROKER_ASSETS"
	EnvSeed         = "MAZEBROKER_SEED"
	EnvLogLevel     = "MAZEBROKER_LOG_LEVEL"
	EnvLogFile      = "MAZEBROKER_LOG_FILE"
)

// MaxDimension bounds the maze width and height.
const MaxDimension = 1000

// Config holds the startup parameters. It is not changed after Load.
type Config struct {
	Width        int
	Height       int
	InitialPrice int64 // minor units, shared by every asset
	InitialCash  int64 // minor units
	Assets       []string
	AssetNames   map[string]string // display names from the asset roster
	Seed         int64             // 0 means seed from the clock
	LogLevel     string
	LogFile      string
}

// Load reads configuration from environment variables, applies defaults,
// and validates values. It returns an error for any invalid value.
func Load() (*Config, error) {
	width, err := getInt(EnvWidth, 6)
	if err != nil || width < 1 || width > MaxDimension {
		return nil, invalid(EnvWidth, dimensionRule, err)
	}

	height, err := getInt(EnvHeight, 6)
	if err != nil || height < 1 || height > MaxDimension {
		return nil, invalid(EnvHeight, dimensionRule, err)
	}

	price, err := getInt64(EnvInitialPrice, 10000)
	if err != nil || price < 0 {
		return nil, invalid(EnvInitialPrice, "must be an integer >= 0", err)
	}

	cash, err := getInt64(EnvInitialCash, 100000)
	if err != nil || cash < 0 {
		return nil, invalid(EnvInitialCash, "must be an integer >= 0", err)
	}

	seed, err := getInt64(EnvSeed, 0)
	if err != nil {
		return nil, invalid(EnvSeed, "must be an integer", err)
	}

	roster, err := gamedata.LoadAssets()
	if err != nil {
		return nil, fmt.Errorf("loading default assets: %w", err)
	}
	assets, err := getAssets(EnvAssets, gamedata.Symbols(roster))
	if err != nil {
		return nil, err
	}
	names := gamedata.Names(roster)
	assetNames := make(map[string]string, len(assets))
	for _, a := range assets {
		if n := names[a]; n != "" {
			assetNames[a] = n
		}
	}

	logLevel := getStr(EnvLogLevel, "info")
	if !isValidLogLevel(logLevel) {
		return nil, fmt.Errorf("invalid %s: %q, must be one of: debug, info, warn, error", EnvLogLevel, logLevel)
	}

	return &Config{
		Width:        width,
		Height:       height,
		InitialPrice: price,
		InitialCash:  cash,
		Assets:       assets,
		AssetNames:   assetNames,
		Seed:         seed,
		LogLevel:     logLevel,
		LogFile:      getStr(EnvLogFile, "mazebroker.log"),
	}, nil
}

// InitialPrices returns a fresh map pricing every asset at InitialPrice.
func (c *Config) InitialPrices() map[string]int64 {
	prices := make(map[string]int64, len(c.Assets))
	for _, a := range c.Assets {
		prices[a] = c.InitialPrice
	}
	return prices
}

var dimensionRule = fmt.Sprintf("must be an integer between 1 and %d", MaxDimension)

func invalid(key, rule string, err error) error {
	if err != nil {
		return fmt.Errorf("invalid %s: %s: %w", key, rule, err)
	}
	return fmt.Errorf("invalid %s: %s, got %q", key, rule, os.Getenv(key))
}

// getAssets parses a comma separated symbol list, falling back to
// defaults when unset.
func getAssets(key string, defaults []string) ([]string, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaults, nil
	}

	parts := strings.Split(v, ",")
	seen := make(map[string]bool, len(parts))
	assets := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.TrimSpace(p)
		if s == "" {
			return nil, fmt.Errorf("invalid %s: empty symbol in %q", key, v)
		}
		if seen[s] {
			return nil, fmt.Errorf("invalid %s: duplicate symbol %q", key, s)
		}
		seen[s] = true
		assets = append(assets, s)
	}
	return assets, nil
}

func getStr(key, defaultVal string) string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v
}

func getInt(key string, defaultVal int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(v)
}

func getInt64(key string, defaultVal int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
