package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/gridspace/internal/analysis"
	"github.com/san-kum/gridspace/internal/config"
	"github.com/san-kum/gridspace/internal/export"
	"github.com/san-kum/gridspace/internal/grid"
	"github.com/san-kum/gridspace/internal/storage"
	"gopkg.in/yaml.v3"
)

var ErrUnknownOutput = errors.New("automation: unknown output format")

// Scenario defines a scripted batch of grid jobs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep builds one grid, from a preset or an inline descriptor, and
// writes it to the listed outputs. The output format follows the file
// extension: .json, .csv, .svg or .png.
type ScenarioStep struct {
	Preset  string         `yaml:"preset"`
	Grid    *config.Config `yaml:"grid"`
	Outputs []string       `yaml:"outputs"`
	Check   bool           `yaml:"check"`
	SaveAs  string         `yaml:"save_as"`
}

// StepResult records what a scenario step produced.
type StepResult struct {
	Name    string
	Kind    string
	Total   int
	Files   []string
	Reports []analysis.SpacingReport
	SavedID string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Runner executes scenarios. Relative output paths are resolved against
// OutDir; Store may be nil when no step uses save_as.
type Runner struct {
	OutDir   string
	Store    *storage.Store
	Progress io.Writer
}

func (r *Runner) logf(format string, args ...any) {
	if r.Progress != nil {
		fmt.Fprintf(r.Progress, format+"\n", args...)
	}
}

// RunScenario executes all steps in a scenario, stopping at the first
// failure or when ctx is canceled.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := step.config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		r.logf("Running step %d/%d: %s", i+1, len(scenario.Steps), cfg.Name)

		result, err := r.runStep(cfg, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (s ScenarioStep) config() (*config.Config, error) {
	switch {
	case s.Grid != nil:
		cfg := s.Grid.Clone()
		if cfg.Precision == "" {
			cfg.Precision = config.PrecisionFloat64
		}
		return cfg, cfg.Validate()
	case s.Preset != "":
		cfg := config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		return cfg, nil
	default:
		return nil, errors.New("step needs a preset or a grid")
	}
}

func (r *Runner) runStep(cfg *config.Config, step ScenarioStep) (StepResult, error) {
	data, err := export.FromConfig(cfg)
	if err != nil {
		return StepResult{}, err
	}
	result := StepResult{Name: cfg.Name, Kind: cfg.Kind, Total: data.Total}

	for _, out := range step.Outputs {
		path := out
		if !filepath.IsAbs(path) && r.OutDir != "" {
			path = filepath.Join(r.OutDir, path)
		}
		if err := writeOutput(cfg, data, path); err != nil {
			return result, fmt.Errorf("%s: %w", out, err)
		}
		result.Files = append(result.Files, path)
	}

	if step.Check {
		spaces, err := linearSpaces(cfg)
		if err != nil {
			return result, err
		}
		for _, s := range spaces {
			result.Reports = append(result.Reports, analysis.Spacing(s, 0))
		}
	}

	if step.SaveAs != "" {
		if r.Store == nil {
			return result, errors.New("save_as needs a store")
		}
		id, err := r.Store.Save(step.SaveAs, cfg)
		if err != nil {
			return result, err
		}
		result.SavedID = id
	}

	return result, nil
}

func linearSpaces(cfg *config.Config) ([]grid.LinearSpace[float64], error) {
	out := make([]grid.LinearSpace[float64], len(cfg.Axes))
	for i, a := range cfg.Axes {
		s, err := config.BuildAxis[float64](a)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func writeOutput(cfg *config.Config, data export.GridData, path string) error {
	title := cfg.Name
	if title == "" {
		title = cfg.Kind
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return export.ToFile(path, data, export.WriteJSON)
	case ".csv":
		return export.ToFile(path, data, export.WriteCSV)
	case ".svg", ".png":
		switch cfg.Kind {
		case config.KindPixel:
			g, err := config.Pixel[float64](cfg)
			if err != nil {
				return err
			}
			if ext == ".svg" {
				svg, err := export.PixelGridToSVG(g, 800, "#00ff00")
				if err != nil {
					return err
				}
				return os.WriteFile(path, []byte(svg), 0644)
			}
			return export.PlotPixelGrid(g, title, path)
		case config.KindLinear:
			s, err := config.Linear[float64](cfg)
			if err != nil {
				return err
			}
			return export.PlotLinearSpace(s, title, path)
		}
		return fmt.Errorf("%w: cannot draw a %s grid", ErrUnknownOutput, cfg.Kind)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, filepath.Ext(path))
	}
}

// ResolutionSweep describes a range of cell counts over one fixed interval.
type ResolutionSweep struct {
	From     float64
	To       float64
	MinPix   int
	MaxPix   int
	NumSteps int
}

// SweepResult holds the diagnostics of one resolution.
type SweepResult struct {
	NumPix       int
	PixelSize    float64
	MaxDrift     float64
	MaxGap       float64
	Float32Error float64
	Consistent   bool
}

// RunSweep builds the interval at each resolution of the sweep and reports
// its spacing diagnostics.
func RunSweep(ctx context.Context, sweep *ResolutionSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 || sweep.MaxPix < sweep.MinPix {
		return nil, fmt.Errorf("invalid sweep: %d steps over [%d, %d] cells", sweep.NumSteps, sweep.MinPix, sweep.MaxPix)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		n := sweep.MinPix
		if sweep.NumSteps > 1 {
			n += i * (sweep.MaxPix - sweep.MinPix) / (sweep.NumSteps - 1)
		}

		s, err := grid.FromEdges(sweep.From, sweep.To, n)
		if err != nil {
			return results, err
		}
		f32, err := analysis.Float32Error(s)
		if err != nil {
			return results, err
		}

		r := analysis.Spacing(s, 0)
		results = append(results, SweepResult{
			NumPix:       n,
			PixelSize:    r.PixelSize,
			MaxDrift:     r.MaxDrift,
			MaxGap:       r.MaxGap,
			Float32Error: f32,
			Consistent:   r.Consistent,
		})
	}

	return results, nil
}

// MonteCarloConfig defines randomized invariant checks over linear spaces.
type MonteCarloConfig struct {
	NumTrials int
	MaxPix    int
	MaxSpan   float64
	MaxOffset float64
	Seed      int64
}

// MonteCarloResult holds the outcome of one random trial.
type MonteCarloResult struct {
	TrialID    int
	From, To   float64
	NumPix     int
	Equivalent bool // edge and center/size constructions agree
	Consistent bool // spacing within tolerance
}

// RunMonteCarlo builds random linear spaces and checks that both
// constructions agree and that the cells tile the interval. Trial inputs are
// drawn in order from the seed, so results are reproducible; the checks run
// in parallel.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 0 || cfg.MaxPix < 1 || cfg.MaxSpan <= 0 {
		return nil, fmt.Errorf("invalid monte carlo config: max_pix=%d max_span=%g", cfg.MaxPix, cfg.MaxSpan)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	for i := range results {
		from := (rng.Float64()*2 - 1) * cfg.MaxOffset
		span := cfg.MaxSpan * (1e-3 + rng.Float64())
		results[i] = MonteCarloResult{
			TrialID: i,
			From:    from,
			To:      from + span,
			NumPix:  1 + rng.Intn(cfg.MaxPix),
		}
	}

	errs := make([]error, cfg.NumTrials)
	parallelFor(cfg.NumTrials, 16, func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = checkTrial(&results[i])
		}
	})

	for i, err := range errs {
		if err != nil {
			return results[:i], err
		}
	}
	return results, nil
}

func checkTrial(r *MonteCarloResult) error {
	a, err := grid.FromEdges(r.From, r.To, r.NumPix)
	if err != nil {
		return fmt.Errorf("trial %d: %w", r.TrialID, err)
	}
	b, err := grid.FromCenterSize(a.Center(), a.Size(), r.NumPix)
	if err != nil {
		return fmt.Errorf("trial %d: %w", r.TrialID, err)
	}

	r.Equivalent = analysis.Equivalent(a, b, 1e-9*a.Size())
	r.Consistent = analysis.Spacing(a, 0).Consistent
	return nil
}

// parallelFor splits [0, n) into chunks of at least minChunk and runs fn on
// each chunk in its own goroutine.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.GOMAXPROCS(0)
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// MonteCarloStats counts trials that passed every check.
func MonteCarloStats(results []MonteCarloResult) (passed int, failed int) {
	for _, r := range results {
		if r.Equivalent && r.Consistent {
			passed++
		} else {
			failed++
		}
	}
	return
}
