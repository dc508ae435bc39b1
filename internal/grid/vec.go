package grid

// Vec2 holds one value per axis of a 2D grid. Order is x, y.
type Vec2[T any] struct {
	X, Y T
}

// Vec3 holds one value per axis of a 3D grid. Order is x, y, z.
type Vec3[T any] struct {
	X, Y, Z T
}
