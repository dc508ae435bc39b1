// Package viz renders grid descriptors in the terminal.
//
// Renderers:
//   - [RenderLinearSpace], [RenderPixelGrid], [RenderVoxelGrid]: summary panels
//   - [Ruler]: one-line drawing of cell boundaries and centers
//   - [PlotCenters], [PlotSpacing]: asciigraph line plots
//   - [Browser]: interactive bubbletea cell browser
//
// Colors come from the current [Theme]; see [SetTheme].
package viz
