package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/gridspace/internal/grid"
	"gopkg.in/yaml.v3"
)

const (
	KindLinear = "linear"
	KindPixel  = "pixel"
	KindVoxel  = "voxel"

	PrecisionFloat32 = "float32"
	PrecisionFloat64 = "float64"

	DefaultNumPix = 10
	DefaultSize   = 2.0
)

var (
	ErrUnknownKind      = errors.New("config: unknown grid kind")
	ErrUnknownPrecision = errors.New("config: unknown precision")
	ErrAxisCount        = errors.New("config: axis count does not match grid kind")
	ErrKindMismatch     = errors.New("config: descriptor describes a different grid kind")
	ErrIncompleteEdges  = errors.New("config: axis sets only one of from/to")
)

// Config is a YAML grid descriptor. Each axis is given either by its edges
// (from/to) or by center and size.
type Config struct {
	Name      string       `yaml:"name,omitempty"`
	Kind      string       `yaml:"kind"`
	Precision string       `yaml:"precision"`
	Axes      []AxisConfig `yaml:"axes"`
}

type AxisConfig struct {
	Name   string   `yaml:"name,omitempty"`
	From   *float64 `yaml:"from,omitempty"`
	To     *float64 `yaml:"to,omitempty"`
	Center float64  `yaml:"center"`
	Size   float64  `yaml:"size"`
	NumPix int      `yaml:"num_pix"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind:      KindLinear,
		Precision: PrecisionFloat64,
		Axes: []AxisConfig{
			{Name: "x", Center: 0, Size: DefaultSize, NumPix: DefaultNumPix},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, including the optional edge pointers.
func (c *Config) Clone() *Config {
	out := *c
	out.Axes = make([]AxisConfig, len(c.Axes))
	for i, a := range c.Axes {
		if a.From != nil {
			v := *a.From
			a.From = &v
		}
		if a.To != nil {
			v := *a.To
			a.To = &v
		}
		out.Axes[i] = a
	}
	return &out
}

// Dim returns the number of axes implied by Kind, or 0 for an unknown kind.
func (c *Config) Dim() int {
	switch c.Kind {
	case KindLinear:
		return 1
	case KindPixel:
		return 2
	case KindVoxel:
		return 3
	default:
		return 0
	}
}

// Validate checks the descriptor shape. Axis values are checked when the
// grid is built.
func (c *Config) Validate() error {
	dim := c.Dim()
	if dim == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	switch c.Precision {
	case "", PrecisionFloat32, PrecisionFloat64:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPrecision, c.Precision)
	}
	if len(c.Axes) != dim {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrAxisCount, c.Kind, dim, len(c.Axes))
	}
	for i, a := range c.Axes {
		if (a.From == nil) != (a.To == nil) {
			return fmt.Errorf("axis %s: %w", a.label(i), ErrIncompleteEdges)
		}
	}
	return nil
}

// UsesEdges reports whether the axis is given by its outer edges.
func (a AxisConfig) UsesEdges() bool {
	return a.From != nil && a.To != nil
}

// SetEdges switches the axis to edge form.
func (a *AxisConfig) SetEdges(from, to float64) {
	a.From = &from
	a.To = &to
}

// SetCenterSize switches the axis to center/size form.
func (a *AxisConfig) SetCenterSize(center, size float64) {
	a.From, a.To = nil, nil
	a.Center = center
	a.Size = size
}

func (a AxisConfig) label(i int) string {
	if a.Name != "" {
		return a.Name
	}
	return [...]string{"x", "y", "z"}[i%3]
}

// BuildAxis creates the linear space described by a.
func BuildAxis[T grid.Float](a AxisConfig) (grid.LinearSpace[T], error) {
	if a.UsesEdges() {
		return grid.FromEdges(T(*a.From), T(*a.To), a.NumPix)
	}
	return grid.FromCenterSize(T(a.Center), T(a.Size), a.NumPix)
}

func (c *Config) axes(want string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Kind != want {
		return fmt.Errorf("%w: want %s, got %s", ErrKindMismatch, want, c.Kind)
	}
	return nil
}

func buildAxes[T grid.Float](c *Config) ([]grid.LinearSpace[T], error) {
	out := make([]grid.LinearSpace[T], len(c.Axes))
	for i, a := range c.Axes {
		s, err := BuildAxis[T](a)
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", a.label(i), err)
		}
		out[i] = s
	}
	return out, nil
}

// Linear builds the linear space of a "linear" descriptor.
func Linear[T grid.Float](c *Config) (grid.LinearSpace[T], error) {
	if err := c.axes(KindLinear); err != nil {
		return grid.LinearSpace[T]{}, err
	}
	axes, err := buildAxes[T](c)
	if err != nil {
		return grid.LinearSpace[T]{}, err
	}
	return axes[0], nil
}

// Pixel builds the grid of a "pixel" descriptor.
func Pixel[T grid.Float](c *Config) (grid.PixelGrid[T], error) {
	if err := c.axes(KindPixel); err != nil {
		return grid.PixelGrid[T]{}, err
	}
	axes, err := buildAxes[T](c)
	if err != nil {
		return grid.PixelGrid[T]{}, err
	}
	return grid.PixelGridFromSpaces(axes[0], axes[1]), nil
}

// Voxel builds the grid of a "voxel" descriptor.
func Voxel[T grid.Float](c *Config) (grid.VoxelGrid[T], error) {
	if err := c.axes(KindVoxel); err != nil {
		return grid.VoxelGrid[T]{}, err
	}
	axes, err := buildAxes[T](c)
	if err != nil {
		return grid.VoxelGrid[T]{}, err
	}
	return grid.VoxelGridFromSpaces(axes[0], axes[1], axes[2]), nil
}

// FromLinear describes an existing linear space in center/size form.
func FromLinear[T grid.Float](s grid.LinearSpace[T]) *Config {
	return &Config{
		Kind:      KindLinear,
		Precision: precisionOf[T](),
		Axes:      []AxisConfig{axisOf("x", s)},
	}
}

// FromPixel describes an existing pixel grid.
func FromPixel[T grid.Float](g grid.PixelGrid[T]) *Config {
	return &Config{
		Kind:      KindPixel,
		Precision: precisionOf[T](),
		Axes:      []AxisConfig{axisOf("x", g.XSpace()), axisOf("y", g.YSpace())},
	}
}

// FromVoxel describes an existing voxel grid.
func FromVoxel[T grid.Float](g grid.VoxelGrid[T]) *Config {
	return &Config{
		Kind:      KindVoxel,
		Precision: precisionOf[T](),
		Axes: []AxisConfig{
			axisOf("x", g.XSpace()),
			axisOf("y", g.YSpace()),
			axisOf("z", g.ZSpace()),
		},
	}
}

func axisOf[T grid.Float](name string, s grid.LinearSpace[T]) AxisConfig {
	return AxisConfig{
		Name:   name,
		Center: float64(s.Center()),
		Size:   float64(s.Size()),
		NumPix: s.NumPix(),
	}
}

func precisionOf[T grid.Float]() string {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return PrecisionFloat32
	}
	return PrecisionFloat64
}
