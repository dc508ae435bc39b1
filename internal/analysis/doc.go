// Package analysis provides numerical diagnostics for grid descriptors.
//
// Available checks:
//   - [Spacing]: step statistics, drift, gaps and center offsets of a linear space
//   - [Equivalent]: compares two spaces cell by cell
//   - [Float32Error]: single versus double precision center error
//
// # Example
//
//	s, _ := grid.FromEdges(1e6, 1e6+8, 14)
//	r := analysis.Spacing(s, 0)
//	fmt.Println(r.Consistent, r.MaxDrift)
package analysis
