package grid

import "fmt"

// VoxelGrid is a 3D grid made of three independent linear spaces.
type VoxelGrid[T Float] struct {
	xSpace LinearSpace[T]
	ySpace LinearSpace[T]
	zSpace LinearSpace[T]
}

// NewVoxelGrid creates a grid of the given size centered at position with
// numPix cells per axis. Axes are built x, y, z and the first failure is
// returned unchanged.
func NewVoxelGrid[T Float](size, position Vec3[T], numPix Vec3[int]) (VoxelGrid[T], error) {
	x, err := FromCenterSize(position.X, size.X, numPix.X)
	if err != nil {
		return VoxelGrid[T]{}, err
	}
	y, err := FromCenterSize(position.Y, size.Y, numPix.Y)
	if err != nil {
		return VoxelGrid[T]{}, err
	}
	z, err := FromCenterSize(position.Z, size.Z, numPix.Z)
	if err != nil {
		return VoxelGrid[T]{}, err
	}
	return VoxelGrid[T]{xSpace: x, ySpace: y, zSpace: z}, nil
}

// VoxelGridFromSpaces combines three existing axes.
func VoxelGridFromSpaces[T Float](x, y, z LinearSpace[T]) VoxelGrid[T] {
	return VoxelGrid[T]{xSpace: x, ySpace: y, zSpace: z}
}

func (g VoxelGrid[T]) XSpace() LinearSpace[T] { return g.xSpace }
func (g VoxelGrid[T]) YSpace() LinearSpace[T] { return g.ySpace }
func (g VoxelGrid[T]) ZSpace() LinearSpace[T] { return g.zSpace }

// SetXSpace, SetYSpace and SetZSpace replace one axis. Invalid spaces are
// rejected and the grid is left unchanged.
func (g *VoxelGrid[T]) SetXSpace(s LinearSpace[T]) error { return setAxis(&g.xSpace, s) }
func (g *VoxelGrid[T]) SetYSpace(s LinearSpace[T]) error { return setAxis(&g.ySpace, s) }
func (g *VoxelGrid[T]) SetZSpace(s LinearSpace[T]) error { return setAxis(&g.zSpace, s) }

func setAxis[T Float](dst *LinearSpace[T], s LinearSpace[T]) error {
	if err := checkSpace(s); err != nil {
		return err
	}
	*dst = s
	return nil
}

func (g VoxelGrid[T]) Size() Vec3[T] {
	return Vec3[T]{X: g.xSpace.Size(), Y: g.ySpace.Size(), Z: g.zSpace.Size()}
}

func (g VoxelGrid[T]) Position() Vec3[T] {
	return Vec3[T]{X: g.xSpace.Center(), Y: g.ySpace.Center(), Z: g.zSpace.Center()}
}

func (g VoxelGrid[T]) NumPix() Vec3[int] {
	return Vec3[int]{X: g.xSpace.NumPix(), Y: g.ySpace.NumPix(), Z: g.zSpace.NumPix()}
}

// TotalVoxels returns the product of the three axis counts.
func (g VoxelGrid[T]) TotalVoxels() int {
	return g.xSpace.NumPix() * g.ySpace.NumPix() * g.zSpace.NumPix()
}

// VoxelSize returns the width of one voxel along each axis.
func (g VoxelGrid[T]) VoxelSize() Vec3[T] {
	return Vec3[T]{X: g.xSpace.PixelSize(), Y: g.ySpace.PixelSize(), Z: g.zSpace.PixelSize()}
}

// CenterAt returns the center of voxel (ix, iy, iz).
func (g VoxelGrid[T]) CenterAt(ix, iy, iz int) (Vec3[T], error) {
	x, err := g.xSpace.At(ix)
	if err != nil {
		return Vec3[T]{}, err
	}
	y, err := g.ySpace.At(iy)
	if err != nil {
		return Vec3[T]{}, err
	}
	z, err := g.zSpace.At(iz)
	if err != nil {
		return Vec3[T]{}, err
	}
	return Vec3[T]{X: x, Y: y, Z: z}, nil
}

// Layer returns the xy plane of z layer iz together with the z coordinate of
// its voxel centers.
func (g VoxelGrid[T]) Layer(iz int) (PixelGrid[T], T, error) {
	z, err := g.zSpace.At(iz)
	if err != nil {
		return PixelGrid[T]{}, 0, err
	}
	return PixelGridFromSpaces(g.xSpace, g.ySpace), z, nil
}

func (g VoxelGrid[T]) String() string {
	return fmt.Sprintf("VoxelGrid{x=%v y=%v z=%v}", g.xSpace, g.ySpace, g.zSpace)
}
