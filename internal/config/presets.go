package config

import "sort"

func edges(from, to float64, n int) AxisConfig {
	return AxisConfig{From: &from, To: &to, NumPix: n}
}

func centered(name string, center, size float64, n int) AxisConfig {
	return AxisConfig{Name: name, Center: center, Size: size, NumPix: n}
}

var Presets = map[string]*Config{
	"unit": {
		Name: "unit", Kind: KindLinear, Precision: PrecisionFloat64,
		Axes: []AxisConfig{edges(-1, 1, 10)},
	},
	"offset": {
		Name: "offset", Kind: KindLinear, Precision: PrecisionFloat64,
		Axes: []AxisConfig{edges(1000000, 1000008, 14)},
	},
	"fine": {
		Name: "fine", Kind: KindLinear, Precision: PrecisionFloat32,
		Axes: []AxisConfig{edges(0, 1, 1000)},
	},
	"detector": {
		Name: "detector", Kind: KindPixel, Precision: PrecisionFloat64,
		Axes: []AxisConfig{
			centered("x", 0, 27.648, 2048),
			centered("y", 0, 27.648, 2048),
		},
	},
	"screen": {
		Name: "screen", Kind: KindPixel, Precision: PrecisionFloat64,
		Axes: []AxisConfig{
			centered("x", 0, 16, 8),
			centered("y", 0, 9, 6),
		},
	},
	"ct": {
		Name: "ct", Kind: KindVoxel, Precision: PrecisionFloat32,
		Axes: []AxisConfig{
			centered("x", 0, 250, 512),
			centered("y", 0, 250, 512),
			centered("z", 62.5, 125, 256),
		},
	},
	"cube": {
		Name: "cube", Kind: KindVoxel, Precision: PrecisionFloat64,
		Axes: []AxisConfig{
			centered("x", 0, 1, 4),
			centered("y", 0, 1, 4),
			centered("z", 0, 1, 4),
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns preset names of the given kind, sorted. An empty kind
// lists every preset.
func ListPresets(kind string) []string {
	var names []string
	for name, cfg := range Presets {
		if kind == "" || cfg.Kind == kind {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
