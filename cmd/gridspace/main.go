package main

import (
	"fmt"
	"log"
	"os"

	"github.com/san-kum/gridspace/internal/config"
	"github.com/san-kum/gridspace/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	themeName  string
	verbose    bool
	configFile string
	preset     string
	kind       string
	precision  string
	from       float64
	to         float64
	centerList string
	sizeList   string
	numPixList string
	outPath    string
	pngOut     string
	showEdges  bool
	plotWidth  int
	plotHeight int
	svgWidth   int
	strokeHex  string
	layer      int
	tolerance  float64
)

// main is the entry point for the gridspace CLI; it builds the command tree
// and exits with status 1 if the selected command fails.
func main() {
	log.SetFlags(0)
	log.SetPrefix("gridspace: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridspace",
		Short: "linear space, pixel grid and voxel grid calculator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			viz.SetTheme(themeName)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gridspace", "data directory")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeCyberpunk.Name, "color theme")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	linspaceCmd := &cobra.Command{
		Use:   "linspace",
		Short: "print the cell centers (or edges) of a linear space",
		RunE:  printLinspace,
	}
	addGridFlags(linspaceCmd)
	linspaceCmd.Flags().BoolVar(&showEdges, "edges", false, "print cell edges instead of centers")

	pixelCmd := &cobra.Command{
		Use:   "pixel",
		Short: "describe a 2D pixel grid",
		RunE:  showKind(config.KindPixel),
	}
	addGridFlags(pixelCmd)

	voxelCmd := &cobra.Command{
		Use:   "voxel",
		Short: "describe a 3D voxel grid",
		RunE:  showKind(config.KindVoxel),
	}
	addGridFlags(voxelCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "describe any grid",
		RunE:  showGrid,
	}
	addGridFlags(showCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot centers and spacing of each axis",
		RunE:  plotGrid,
	}
	addGridFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse grid cells interactively",
		RunE:  browseGrid,
	}
	addGridFlags(browseCmd)

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "spacing diagnostics for each axis",
		RunE:  checkGrid,
	}
	addGridFlags(checkCmd)
	checkCmd.Flags().Float64Var(&tolerance, "tol", 0, "relative tolerance (default 1e-6)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json",
		Short: "export centers and edges as JSON",
		RunE:  exportJSON,
	}
	addGridFlags(exportJSONCmd)
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv",
		Short: "export centers and edges as CSV",
		RunE:  exportCSV,
	}
	addGridFlags(exportCSVCmd)
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "draw a pixel grid (or one voxel layer) as SVG",
		RunE:  drawSVG,
	}
	addGridFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	svgCmd.Flags().StringVar(&strokeHex, "stroke", "#00ff00", "stroke color")
	svgCmd.Flags().IntVar(&layer, "layer", 0, "z layer of a voxel grid")

	pngCmd := &cobra.Command{
		Use:   "png",
		Short: "plot a grid to an image file (png, svg or pdf by extension)",
		RunE:  drawPNG,
	}
	addGridFlags(pngCmd)
	pngCmd.Flags().StringVarP(&pngOut, "out", "o", "grid.png", "output file")
	pngCmd.Flags().IntVar(&layer, "layer", 0, "z layer of a voxel grid")

	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "store a grid descriptor in the data directory",
		Args:  cobra.ExactArgs(1),
		RunE:  saveGrid,
	}
	addGridFlags(saveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored grids",
		RunE:  listGrids,
	}

	loadCmd := &cobra.Command{
		Use:   "load [id]",
		Short: "describe a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE:  loadGrid,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "remove a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteGrid,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k := ""
			if len(args) > 0 {
				k = args[0]
			}
			names := config.ListPresets(k)
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no presets for kind: %s\n", k)
				return nil
			}
			for _, name := range names {
				p := config.Presets[name]
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-7s %s\n", name, p.Kind, p.Precision)
			}
			return nil
		},
	}

	rootCmd.AddCommand(linspaceCmd, pixelCmd, voxelCmd, showCmd, plotCmd, browseCmd, checkCmd,
		exportJSONCmd, exportCSVCmd, svgCmd, pngCmd, saveCmd, listCmd, loadCmd, deleteCmd, presetsCmd)
	rootCmd.AddCommand(newBatchCmds()...)
	return rootCmd
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "grid descriptor file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset grid")
	cmd.Flags().StringVar(&kind, "kind", config.KindLinear, "grid kind: linear, pixel or voxel")
	cmd.Flags().StringVar(&precision, "precision", config.PrecisionFloat64, "float32 or float64")
	cmd.Flags().Float64Var(&from, "from", -1, "lower edge (linear)")
	cmd.Flags().Float64Var(&to, "to", 1, "upper edge (linear)")
	cmd.Flags().StringVar(&centerList, "center", "", "center per axis, comma separated")
	cmd.Flags().StringVar(&sizeList, "size", "", "size per axis, comma separated")
	cmd.Flags().StringVar(&numPixList, "n", "", "cell count per axis, comma separated")
}

func debugf(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}
