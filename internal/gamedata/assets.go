package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// AssetDef defines a tradeable stock loaded from JSON.
type AssetDef struct {
	Symbol string `json:"symbol"` // Ticker shown on vendor stalls (e.g., "FOO")
	Name   string `json:"name"`   // Display name
}

// AssetsFile represents the structure of assets.json.
type AssetsFile struct {
	Assets []AssetDef `json:"assets"`
}

// LoadAssets loads the default asset roster from the embedded assets.json.
func LoadAssets() ([]AssetDef, error) {
	return loadAssetsFS(dataFS, "assets.json")
}

func loadAssetsFS(fsys fs.FS, filename string) ([]AssetDef, error) {
	file, err := loadFS[AssetsFile](fsys, filename)
	if err != nil {
		return nil, err
	}
	if len(file.Assets) == 0 {
		return nil, errors.New("no assets loaded from " + filename)
	}
	seen := make(map[string]bool, len(file.Assets))
	for i, a := range file.Assets {
		if strings.TrimSpace(a.Symbol) == "" {
			return nil, fmt.Errorf("asset %d in %s has an empty symbol", i, filename)
		}
		if seen[a.Symbol] {
			return nil, fmt.Errorf("duplicate asset symbol %q in %s", a.Symbol, filename)
		}
		seen[a.Symbol] = true
	}
	return file.Assets, nil
}

// Names maps each symbol in defs to its display name.
func Names(defs []AssetDef) map[string]string {
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		out[d.Symbol] = d.Name
	}
	return out
}

// Symbols returns the ticker symbols of defs in order.
func Symbols(defs []AssetDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Symbol
	}
	return out
}
