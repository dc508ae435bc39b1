package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/gridspace/internal/grid"
)

// AxisData is the serialized form of one linear space.
type AxisData struct {
	Name      string       `json:"name"`
	Center    float64      `json:"center"`
	Size      float64      `json:"size"`
	NumPix    int          `json:"num_pix"`
	PixelSize float64      `json:"pixel_size"`
	Centers   []float64    `json:"centers"`
	Edges     [][2]float64 `json:"edges"`
}

// GridData is the serialized form of a linear space, pixel grid or voxel
// grid.
type GridData struct {
	Name  string     `json:"name,omitempty"`
	Kind  string     `json:"kind"`
	Total int        `json:"total_cells"`
	Axes  []AxisData `json:"axes"`
}

var axisNames = [...]string{"x", "y", "z"}

func axisData[T grid.Float](name string, s grid.LinearSpace[T]) AxisData {
	d := AxisData{
		Name:      name,
		Center:    float64(s.Center()),
		Size:      float64(s.Size()),
		NumPix:    s.NumPix(),
		PixelSize: float64(s.PixelSize()),
		Centers:   make([]float64, s.NumPix()),
		Edges:     make([][2]float64, s.NumPix()),
	}
	for i, c := range s.Grid() {
		d.Centers[i] = float64(c)
	}
	for i, e := range s.Edges() {
		d.Edges[i] = [2]float64{float64(e.Start), float64(e.End)}
	}
	return d
}

func newGridData[T grid.Float](kind string, axes ...grid.LinearSpace[T]) GridData {
	d := GridData{Kind: kind, Total: 1, Axes: make([]AxisData, len(axes))}
	for i, s := range axes {
		d.Axes[i] = axisData(axisNames[i], s)
		d.Total *= s.NumPix()
	}
	return d
}

func LinearData[T grid.Float](s grid.LinearSpace[T]) GridData {
	return newGridData("linear", s)
}

func PixelData[T grid.Float](g grid.PixelGrid[T]) GridData {
	return newGridData("pixel", g.XSpace(), g.YSpace())
}

func VoxelData[T grid.Float](g grid.VoxelGrid[T]) GridData {
	return newGridData("voxel", g.XSpace(), g.YSpace(), g.ZSpace())
}

func WriteJSON(w io.Writer, d GridData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteCSV writes one row per cell per axis: axis, index, center, start, end.
func WriteCSV(w io.Writer, d GridData) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"axis", "index", "center", "start", "end"}); err != nil {
		return err
	}
	for _, a := range d.Axes {
		for i, c := range a.Centers {
			row := []string{
				a.Name,
				strconv.Itoa(i),
				strconv.FormatFloat(c, 'g', -1, 64),
				strconv.FormatFloat(a.Edges[i][0], 'g', -1, 64),
				strconv.FormatFloat(a.Edges[i][1], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile writes d to path with the given writer function.
func ToFile(path string, d GridData, write func(io.Writer, GridData) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, d); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
