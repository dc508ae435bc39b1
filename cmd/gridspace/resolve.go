package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/gridspace/internal/config"
	"github.com/spf13/cobra"
)

// resolveConfig builds the grid descriptor for cmd. Precedence, lowest first:
// defaults, preset, descriptor file, explicit flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(""))
		}
		debugf("using preset %s", preset)
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		debugf("loaded descriptor %s", configFile)
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("kind") {
		setKind(cfg, kind)
	}
	if flags.Changed("precision") {
		cfg.Precision = precision
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if flags.Changed("from") || flags.Changed("to") {
		if cfg.Kind != config.KindLinear {
			return nil, fmt.Errorf("--from/--to apply to linear spaces only, not %s", cfg.Kind)
		}
		a := &cfg.Axes[0]
		lo, hi := edgesOf(*a)
		if flags.Changed("from") {
			lo = from
		}
		if flags.Changed("to") {
			hi = to
		}
		a.SetEdges(lo, hi)
	}

	if flags.Changed("center") {
		centers, err := parseFloats(centerList, len(cfg.Axes))
		if err != nil {
			return nil, fmt.Errorf("--center: %w", err)
		}
		for i := range cfg.Axes {
			toCenterSize(&cfg.Axes[i])
			cfg.Axes[i].Center = centers[i]
		}
	}
	if flags.Changed("size") {
		sizes, err := parseFloats(sizeList, len(cfg.Axes))
		if err != nil {
			return nil, fmt.Errorf("--size: %w", err)
		}
		for i := range cfg.Axes {
			toCenterSize(&cfg.Axes[i])
			cfg.Axes[i].Size = sizes[i]
		}
	}
	if flags.Changed("n") {
		counts, err := parseInts(numPixList, len(cfg.Axes))
		if err != nil {
			return nil, fmt.Errorf("--n: %w", err)
		}
		for i := range cfg.Axes {
			cfg.Axes[i].NumPix = counts[i]
		}
	}

	debugf("descriptor: kind=%s precision=%s axes=%d", cfg.Kind, cfg.Precision, len(cfg.Axes))
	return cfg, nil
}

// setKind changes the descriptor kind, trimming axes or padding them with
// copies of the default axis.
func setKind(cfg *config.Config, k string) {
	if cfg.Kind == k {
		return
	}
	cfg.Kind = k
	dim := cfg.Dim()
	for len(cfg.Axes) < dim {
		a := config.DefaultConfig().Axes[0]
		a.Name = [...]string{"x", "y", "z"}[len(cfg.Axes)]
		cfg.Axes = append(cfg.Axes, a)
	}
	if dim > 0 && len(cfg.Axes) > dim {
		cfg.Axes = cfg.Axes[:dim]
	}
}

func edgesOf(a config.AxisConfig) (float64, float64) {
	if a.UsesEdges() {
		return *a.From, *a.To
	}
	return a.Center - a.Size/2, a.Center + a.Size/2
}

func toCenterSize(a *config.AxisConfig) {
	if !a.UsesEdges() {
		return
	}
	lo, hi := edgesOf(*a)
	a.SetCenterSize((lo+hi)/2, hi-lo)
}

// parseFloats parses a comma separated list. A single value is repeated for
// every axis.
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != n {
		return nil, fmt.Errorf("expected 1 or %d values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i := range out {
		p := parts[0]
		if len(parts) == n {
			p = parts[i]
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 1 && len(parts) != n {
		return nil, fmt.Errorf("expected 1 or %d values, got %d", n, len(parts))
	}
	out := make([]int, n)
	for i := range out {
		p := parts[0]
		if len(parts) == n {
			p = parts[i]
		}
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", p)
		}
		out[i] = v
	}
	return out, nil
}
