package config

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func unsetAllConfigEnv() {
	for _, key := range allEnvKeys {
		os.Unsetenv(key)
	}
}

func TestProperty_ValidConfigParsing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		unsetAllConfigEnv()
		defer unsetAllConfigEnv()

		width := rapid.IntRange(1, 200).Draw(t, "width")
		height := rapid.IntRange(1, 200).Draw(t, "height")
		price := rapid.Int64Range(0, 1_000_000_000).Draw(t, "price")
		cash := rapid.Int64Range(0, 1_000_000_000).Draw(t, "cash")
		seed := rapid.Int64().Draw(t, "seed")
		assets := rapid.SliceOfNDistinct(
			rapid.StringMatching(`[A-Z]{3,4}`), 1, 6, rapid.ID[string],
		).Draw(t, "assets")

		os.Setenv(EnvWidth, fmt.Sprintf("%d", width))
		os.Setenv(EnvHeight, fmt.Sprintf("%d", height))
		os.Setenv(EnvInitialPrice, fmt.Sprintf("%d", price))
		os.Setenv(EnvInitialCash, fmt.Sprintf("%d", cash))
		os.Setenv(EnvSeed, fmt.Sprintf("%d", seed))
		os.Setenv(EnvAssets, strings.Join(assets, ","))

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() unexpected error: %v", err)
		}
		if cfg.Width != width || cfg.Height != height {
			t.Fatalf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, width, height)
		}
		if cfg.InitialPrice != price || cfg.InitialCash != cash || cfg.Seed != seed {
			t.Fatalf("got price=%d cash=%d seed=%d, want %d %d %d",
				cfg.InitialPrice, cfg.InitialCash, cfg.Seed, price, cash, seed)
		}
		if strings.Join(cfg.Assets, ",") != strings.Join(assets, ",") {
			t.Fatalf("Assets = %v, want %v", cfg.Assets, assets)
		}
		for symbol, p := range cfg.InitialPrices() {
			if p != price {
				t.Fatalf("InitialPrices()[%s] = %d, want %d", symbol, p, price)
			}
		}
	})
}
