package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gridspace/internal/storage"
)

const scenarioYAML = `name: batch
description: two grids
steps:
  - preset: unit
    outputs: [unit.json, unit.csv]
    check: true
  - grid:
      kind: pixel
      axes:
        - {name: x, center: 0, size: 4, num_pix: 4}
        - {name: y, center: 0, size: 2, num_pix: 2}
    outputs: [plane.svg]
    save_as: plane
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "batch" || len(s.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", s)
	}
	if s.Steps[1].Grid == nil || len(s.Steps[1].Grid.Axes) != 2 {
		t.Fatalf("inline grid not parsed: %+v", s.Steps[1])
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	out := t.TempDir()
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	r := &Runner{OutDir: out, Store: store}

	results, err := r.RunScenario(context.Background(), s)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Total != 10 || len(results[0].Reports) != 1 || !results[0].Reports[0].Consistent {
		t.Errorf("unexpected first step: %+v", results[0])
	}
	if results[1].Total != 8 || results[1].SavedID == "" {
		t.Errorf("unexpected second step: %+v", results[1])
	}

	for _, name := range []string{"unit.json", "unit.csv", "plane.svg"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}

	saved, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 1 || saved[0].Name != "plane" {
		t.Errorf("unexpected store contents: %+v", saved)
	}
}

func TestRunScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"empty step", ScenarioStep{}},
		{"unknown preset", ScenarioStep{Preset: "nonexistent"}},
		{"unknown output", ScenarioStep{Preset: "unit", Outputs: []string{"unit.txt"}}},
		{"save without store", ScenarioStep{Preset: "unit", SaveAs: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Runner{OutDir: t.TempDir()}
			_, err := r.RunScenario(context.Background(), &Scenario{Steps: []ScenarioStep{tt.step}})
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunScenario_UnknownOutput(t *testing.T) {
	r := &Runner{OutDir: t.TempDir()}
	_, err := r.RunScenario(context.Background(), &Scenario{
		Steps: []ScenarioStep{{Preset: "cube", Outputs: []string{"cube.svg"}}},
	})
	if !errors.Is(err, ErrUnknownOutput) {
		t.Errorf("expected ErrUnknownOutput, got %v", err)
	}
}

func TestRunScenario_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Runner{}
	results, err := r.RunScenario(ctx, &Scenario{Steps: []ScenarioStep{{Preset: "unit"}}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &ResolutionSweep{
		From: 0, To: 1, MinPix: 10, MaxPix: 1000, NumSteps: 3,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []int{10, 505, 1000}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if r.NumPix != want[i] {
			t.Errorf("step %d: numPix = %d, want %d", i, r.NumPix, want[i])
		}
		if !r.Consistent {
			t.Errorf("step %d: spacing not consistent", i)
		}
		if r.Float32Error <= 0 || r.Float32Error > 1e-6 {
			t.Errorf("step %d: float32 error %g out of range", i, r.Float32Error)
		}
	}
	if results[0].PixelSize != 0.1 {
		t.Errorf("expected pixel size 0.1, got %v", results[0].PixelSize)
	}
}

func TestRunSweep_Invalid(t *testing.T) {
	if _, err := RunSweep(context.Background(), &ResolutionSweep{From: 0, To: 1, MinPix: 10, MaxPix: 5, NumSteps: 2}); err == nil {
		t.Error("expected error for inverted cell range")
	}
	if _, err := RunSweep(context.Background(), &ResolutionSweep{From: 1, To: 0, MinPix: 1, MaxPix: 5, NumSteps: 2}); err == nil {
		t.Error("expected error for inverted interval")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{
		NumTrials: 50,
		MaxPix:    200,
		MaxSpan:   10,
		MaxOffset: 100,
		Seed:      42,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 50 {
		t.Fatalf("expected 50 results, got %d", len(results))
	}

	passed, failed := MonteCarloStats(results)
	if passed != 50 || failed != 0 {
		t.Errorf("expected all trials to pass, got %d passed, %d failed", passed, failed)
	}
}

func TestRunMonteCarlo_Reproducible(t *testing.T) {
	cfg := &MonteCarloConfig{NumTrials: 40, MaxPix: 50, MaxSpan: 1, MaxOffset: 10, Seed: 9}
	a, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("trial %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRunMonteCarlo_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunMonteCarlo(ctx, &MonteCarloConfig{NumTrials: 100, MaxPix: 10, MaxSpan: 1, Seed: 1})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParallelFor(t *testing.T) {
	for _, n := range []int{0, 1, 15, 16, 100, 1001} {
		seen := make([]int, n)
		parallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}
