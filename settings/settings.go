// Package settings holds the user-editable account settings and the pip
// economics derived from them.
package settings

import "math"

// Settings are the account conventions the user picked. All sizes are in
// instrument units, USDJPYRate is yen per dollar.
type Settings struct {
	PresetFX     string  `json:"preset_fx" yaml:"preset_fx"`
	PresetGold   string  `json:"preset_gold" yaml:"preset_gold"`
	FXLotSize    float64 `json:"fx_lot_size" yaml:"fx_lot_size"`
	FXPipSizeJPY float64 `json:"fx_pip_size_jpy" yaml:"fx_pip_size_jpy"`
	FXPipSizeUSD float64 `json:"fx_pip_size_usd" yaml:"fx_pip_size_usd"`
	GoldLotSize  float64 `json:"gold_lot_size" yaml:"gold_lot_size"`
	GoldPipSize  float64 `json:"gold_pip_size" yaml:"gold_pip_size"`
	USDJPYRate   float64 `json:"usd_jpy_rate" yaml:"usd_jpy_rate"`
}

// Default returns the overseas-broker defaults: 100,000 units per FX lot and
// 100oz per gold lot at 150 JPY/USD.
func Default() Settings {
	return Settings{
		PresetFX:     PresetFXOverseas,
		PresetGold:   PresetGoldStandard,
		FXLotSize:    100000,
		FXPipSizeJPY: 0.01,
		FXPipSizeUSD: 0.0001,
		GoldLotSize:  100,
		GoldPipSize:  0.1,
		USDJPYRate:   150,
	}
}

// Sanitize replaces unusable values with their defaults and enforces the
// minimum sizes, so that every derived value stays finite.
func Sanitize(s Settings) Settings {
	d := Default()
	s.FXLotSize = atLeast(orDefault(s.FXLotSize, d.FXLotSize), 1)
	s.FXPipSizeJPY = atLeast(orDefault(s.FXPipSizeJPY, d.FXPipSizeJPY), 0.0001)
	s.FXPipSizeUSD = atLeast(orDefault(s.FXPipSizeUSD, d.FXPipSizeUSD), 0.00001)
	s.GoldLotSize = atLeast(orDefault(s.GoldLotSize, d.GoldLotSize), 0.0001)
	s.GoldPipSize = atLeast(orDefault(s.GoldPipSize, d.GoldPipSize), 0.0001)
	s.USDJPYRate = atLeast(orDefault(s.USDJPYRate, d.USDJPYRate), 0.0001)
	return s
}

func orDefault(v, def float64) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func atLeast(v, min float64) float64 {
	return math.Max(min, v)
}

// Bucket is the pip economics of one instrument family.
type Bucket struct {
	PipMultiplier  float64 // price delta -> pips
	PipValuePerLot float64 // account currency per pip per lot
}

// Derived is recomputed from Settings on every read and never stored.
type Derived struct {
	Settings Settings
	FXJPY    Bucket
	FXUSD    Bucket
	Gold     Bucket
}

// Derive computes the pip economics for yen crosses, dollar-quoted pairs and
// gold. Dollar-quoted buckets are converted to yen with USDJPYRate.
func Derive(s Settings) Derived {
	return Derived{
		Settings: s,
		FXJPY: Bucket{
			PipMultiplier:  1 / s.FXPipSizeJPY,
			PipValuePerLot: s.FXLotSize * s.FXPipSizeJPY,
		},
		FXUSD: Bucket{
			PipMultiplier:  1 / s.FXPipSizeUSD,
			PipValuePerLot: s.FXLotSize * s.FXPipSizeUSD * s.USDJPYRate,
		},
		Gold: Bucket{
			PipMultiplier:  1 / s.GoldPipSize,
			PipValuePerLot: s.GoldLotSize * s.GoldPipSize * s.USDJPYRate,
		},
	}
}
