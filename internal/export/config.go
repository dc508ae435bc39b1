package export

import (
	"github.com/san-kum/gridspace/internal/config"
	"github.com/san-kum/gridspace/internal/grid"
)

// FromConfig builds the grid described by cfg in its declared precision and
// returns its serialized form.
func FromConfig(cfg *config.Config) (GridData, error) {
	var (
		d   GridData
		err error
	)
	if cfg.Precision == config.PrecisionFloat32 {
		d, err = fromConfig[float32](cfg)
	} else {
		d, err = fromConfig[float64](cfg)
	}
	if err != nil {
		return GridData{}, err
	}
	d.Name = cfg.Name
	return d, nil
}

func fromConfig[T grid.Float](cfg *config.Config) (GridData, error) {
	if err := cfg.Validate(); err != nil {
		return GridData{}, err
	}
	switch cfg.Kind {
	case config.KindPixel:
		g, err := config.Pixel[T](cfg)
		if err != nil {
			return GridData{}, err
		}
		return PixelData(g), nil
	case config.KindVoxel:
		g, err := config.Voxel[T](cfg)
		if err != nil {
			return GridData{}, err
		}
		return VoxelData(g), nil
	default:
		s, err := config.Linear[T](cfg)
		if err != nil {
			return GridData{}, err
		}
		return LinearData(s), nil
	}
}
