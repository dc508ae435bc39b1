// Package grid provides geometric grid descriptors for scientific computing.
//
// The package defines one-dimensional evenly spaced intervals and their
// compositions into two- and three-dimensional grids:
//
//   - [LinearSpace]: an interval partitioned into equal-width cells
//   - [PixelGrid]: two independent linear spaces (x, y)
//   - [VoxelGrid]: three independent linear spaces (x, y, z)
//
// A linear space is built either from its outer edges or from its center
// and size. Both forms produce the same canonical (center, size, numPix)
// representation, so the two constructions below describe the same cells:
//
//	a, _ := grid.FromEdges(-1.0, 1.0, 10)
//	b, _ := grid.FromCenterSize(0.0, 2.0, 10)
//
// Cell centers never include the outer edges of the interval. Widths are
// computed as size/numPix in the element type, so sums of many widths drift
// by the usual floating-point error.
//
// # Indexed access
//
// [LinearSpace.At] and [LinearSpace.EdgesAt] are checked: an index outside
// [0, NumPix()) returns [ErrIndexOutOfRange].
//
// # Thread Safety
//
// All types are plain values with no internal synchronization. Copies are
// independent; a single instance must not be mutated from several goroutines.
package grid
