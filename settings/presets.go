package settings

import (
	"fmt"
	"sort"
)

const (
	PresetFXOverseas   = "fx-overseas"
	PresetFXDomestic   = "fx-domestic"
	PresetFXMicro      = "fx-micro"
	PresetGoldStandard = "gold-standard"
	PresetGoldMini     = "gold-mini"
	PresetGoldMicro    = "gold-micro"
)

type preset struct {
	label string
	apply func(*Settings)
}

var presets = map[string]preset{
	PresetFXOverseas:   {"Overseas FX (1 lot = 100,000 units)", fxPreset(PresetFXOverseas, 100000)},
	PresetFXDomestic:   {"Domestic FX (1 lot = 10,000 units)", fxPreset(PresetFXDomestic, 10000)},
	PresetFXMicro:      {"Micro account (1 lot = 1,000 units)", fxPreset(PresetFXMicro, 1000)},
	PresetGoldStandard: {"Gold standard (1 lot = 100oz)", goldPreset(PresetGoldStandard, 100)},
	PresetGoldMini:     {"Gold mini (1 lot = 10oz)", goldPreset(PresetGoldMini, 10)},
	PresetGoldMicro:    {"Gold micro (1 lot = 1oz)", goldPreset(PresetGoldMicro, 1)},
}

func fxPreset(name string, lot float64) func(*Settings) {
	return func(s *Settings) {
		s.PresetFX = name
		s.FXLotSize = lot
		s.FXPipSizeJPY = 0.01
		s.FXPipSizeUSD = 0.0001
	}
}

func goldPreset(name string, lot float64) func(*Settings) {
	return func(s *Settings) {
		s.PresetGold = name
		s.GoldLotSize = lot
		s.GoldPipSize = 0.1
	}
}

// ApplyPreset returns s with the named preset applied. A valid usdJPYRate
// (> 0) replaces the stored rate; pass 0 to keep it.
func ApplyPreset(s Settings, name string, usdJPYRate float64) (Settings, error) {
	p, ok := presets[name]
	if !ok {
		return s, fmt.Errorf("unknown preset %q", name)
	}
	if usdJPYRate > 0 {
		s.USDJPYRate = usdJPYRate
	}
	p.apply(&s)
	return s, nil
}

// PresetLabel returns the human readable description of a preset.
func PresetLabel(name string) string {
	return presets[name].label
}

// PresetNames lists the known presets sorted by name.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
