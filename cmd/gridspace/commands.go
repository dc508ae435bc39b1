package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/san-kum/gridspace/internal/analysis"
	"github.com/san-kum/gridspace/internal/config"
	"github.com/san-kum/gridspace/internal/export"
	"github.com/san-kum/gridspace/internal/grid"
	"github.com/san-kum/gridspace/internal/storage"
	"github.com/san-kum/gridspace/internal/viz"
	"github.com/spf13/cobra"
)

func is32(cfg *config.Config) bool {
	return cfg.Precision == config.PrecisionFloat32
}

// axes builds every axis of cfg in precision T.
func axes[T grid.Float](cfg *config.Config) ([]grid.LinearSpace[T], error) {
	out := make([]grid.LinearSpace[T], 0, len(cfg.Axes))
	switch cfg.Kind {
	case config.KindPixel:
		g, err := config.Pixel[T](cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, g.XSpace(), g.YSpace())
	case config.KindVoxel:
		g, err := config.Voxel[T](cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, g.XSpace(), g.YSpace(), g.ZSpace())
	default:
		s, err := config.Linear[T](cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func printLinspace(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("kind") {
		_ = cmd.Flags().Set("kind", config.KindLinear)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if is32(cfg) {
		return writeLinspace[float32](cmd.OutOrStdout(), cfg)
	}
	return writeLinspace[float64](cmd.OutOrStdout(), cfg)
}

func writeLinspace[T grid.Float](w io.Writer, cfg *config.Config) error {
	s, err := config.Linear[T](cfg)
	if err != nil {
		return err
	}
	bits := 64
	if is32(cfg) {
		bits = 32
	}
	f := func(v T) string { return strconv.FormatFloat(float64(v), 'g', -1, bits) }

	if showEdges {
		for _, e := range s.Edges() {
			fmt.Fprintf(w, "%s %s\n", f(e.Start), f(e.End))
		}
		return nil
	}
	for _, c := range s.Grid() {
		fmt.Fprintln(w, f(c))
	}
	return nil
}

func showKind(k string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_ = cmd.Flags().Set("kind", k)
		return showGrid(cmd, args)
	}
}

func showGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	out, err := renderConfig(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func renderConfig(cfg *config.Config) (string, error) {
	if is32(cfg) {
		return render[float32](cfg)
	}
	return render[float64](cfg)
}

func render[T grid.Float](cfg *config.Config) (string, error) {
	title := cfg.Name
	if title == "" {
		title = cfg.Kind
	}
	switch cfg.Kind {
	case config.KindPixel:
		g, err := config.Pixel[T](cfg)
		if err != nil {
			return "", err
		}
		return viz.RenderPixelGrid(title, g), nil
	case config.KindVoxel:
		g, err := config.Voxel[T](cfg)
		if err != nil {
			return "", err
		}
		return viz.RenderVoxelGrid(title, g), nil
	default:
		s, err := config.Linear[T](cfg)
		if err != nil {
			return "", err
		}
		return viz.RenderLinearSpace(title, s), nil
	}
}

func plotGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	spaces, err := axes[float64](cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for i, s := range spaces {
		fmt.Fprintf(w, "axis %s: %v\n", axisName(cfg, i), s)
		fmt.Fprintln(w, viz.PlotCenters(s, plotWidth, plotHeight))
		fmt.Fprintln(w)
		fmt.Fprintln(w, viz.PlotSpacing(s, plotWidth, plotHeight))
		fmt.Fprintln(w)
	}
	return nil
}

func browseGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	spaces, err := axes[float64](cfg)
	if err != nil {
		return err
	}
	title := cfg.Name
	if title == "" {
		title = cfg.Kind
	}
	return viz.RunBrowser(viz.NewBrowser(title, spaces...))
}

func checkGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var (
		reports []analysis.SpacingReport
		names   []string
	)
	if is32(cfg) {
		spaces, err := axes[float32](cfg)
		if err != nil {
			return err
		}
		for _, s := range spaces {
			reports = append(reports, analysis.Spacing(s, tolerance))
		}
	} else {
		spaces, err := axes[float64](cfg)
		if err != nil {
			return err
		}
		for _, s := range spaces {
			reports = append(reports, analysis.Spacing(s, tolerance))
			if e, err := analysis.Float32Error(s); err == nil {
				debugf("axis %v: float32 center error %g", s, e)
			}
		}
	}
	for i := range cfg.Axes {
		names = append(names, "axis "+axisName(cfg, i))
	}

	failed := 0
	for i, r := range reports {
		fmt.Fprintln(cmd.OutOrStdout(), viz.RenderSpacing(names[i], r))
		if !r.Consistent {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d axis(es) outside tolerance", failed)
	}
	return nil
}

func axisName(cfg *config.Config, i int) string {
	if n := cfg.Axes[i].Name; n != "" {
		return n
	}
	return [...]string{"x", "y", "z"}[i]
}

func writeOutput(cmd *cobra.Command, d export.GridData, write func(io.Writer, export.GridData) error) error {
	if outPath == "" {
		return write(cmd.OutOrStdout(), d)
	}
	if err := export.ToFile(outPath, d, write); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	d, err := export.FromConfig(cfg)
	if err != nil {
		return err
	}
	return writeOutput(cmd, d, export.WriteJSON)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	d, err := export.FromConfig(cfg)
	if err != nil {
		return err
	}
	return writeOutput(cmd, d, export.WriteCSV)
}

// planeOf returns the pixel grid drawn for cfg: the grid itself, or one z
// layer of a voxel grid.
func planeOf(cfg *config.Config) (grid.PixelGrid[float64], error) {
	switch cfg.Kind {
	case config.KindPixel:
		return config.Pixel[float64](cfg)
	case config.KindVoxel:
		v, err := config.Voxel[float64](cfg)
		if err != nil {
			return grid.PixelGrid[float64]{}, err
		}
		g, z, err := v.Layer(layer)
		if err != nil {
			return grid.PixelGrid[float64]{}, err
		}
		debugf("drawing layer %d at z=%g", layer, z)
		return g, nil
	default:
		return grid.PixelGrid[float64]{}, fmt.Errorf("%s grids have no plane to draw", cfg.Kind)
	}
}

func drawSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	g, err := planeOf(cfg)
	if err != nil {
		return err
	}

	svg, err := export.PixelGridToSVG(g, svgWidth, strokeHex)
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), svg)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", outPath)
	return nil
}

func drawPNG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	title := cfg.Name
	if title == "" {
		title = cfg.Kind
	}

	if cfg.Kind == config.KindLinear {
		s, err := config.Linear[float64](cfg)
		if err != nil {
			return err
		}
		err = export.PlotLinearSpace(s, title, pngOut)
		if err != nil {
			return err
		}
	} else {
		g, err := planeOf(cfg)
		if err != nil {
			return err
		}
		if err := export.PlotPixelGrid(g, title, pngOut); err != nil {
			return err
		}
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", pngOut)
	return nil
}

func saveGrid(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(args[0], cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func listGrids(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	grids, err := st.List()
	if err != nil {
		return err
	}

	if len(grids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no grids found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tPRECISION\tCELLS\tNUM_PIX\tTIME")
	for _, g := range grids {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%v\t%s\n",
			g.ID,
			g.Kind,
			g.Precision,
			g.TotalCells,
			g.NumPix,
			g.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}
	return w.Flush()
}

func loadGrid(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	cfg, err := st.LoadConfig(args[0])
	if err != nil {
		return err
	}
	out, err := renderConfig(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func deleteGrid(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	debugf("deleted %s", args[0])
	return nil
}
