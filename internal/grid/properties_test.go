package grid_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gridspace/internal/grid"
)

var _ = Describe("LinearSpace", func() {
	type params struct {
		from, to float64
		n        int
	}

	checkTiling := func(p params) {
		s, err := grid.FromEdges(p.from, p.to, p.n)
		Expect(err).NotTo(HaveOccurred())

		g := s.Grid()
		e := s.Edges()
		Expect(g).To(HaveLen(s.NumPix()))
		Expect(e).To(HaveLen(s.NumPix()))

		tol := 1e-6 * s.Size()
		for i := range e {
			Expect(e[i].Start).To(BeNumerically("<", e[i].End))
			Expect(g[i]).To(BeNumerically("~", e[i].Midpoint(), tol))
			if i < len(e)-1 {
				Expect(e[i].End).To(BeNumerically("~", e[i+1].Start, tol))
			}
		}
		Expect(e[0].Start).To(BeNumerically("~", p.from, tol))
		Expect(e[len(e)-1].End).To(BeNumerically("~", p.to, tol))
	}

	DescribeTable("tiles the interval with contiguous cells",
		checkTiling,
		Entry("unit interval", params{-1, 1, 10}),
		Entry("single cell", params{0, 1, 1}),
		Entry("large offset", params{1e6, 1e6 + 8, 14}),
		Entry("many cells", params{-250, 750, 10000}),
		Entry("tiny span", params{0.001, 0.0011, 7}),
	)

	DescribeTable("edge and center-size constructions agree",
		func(p params) {
			a, err := grid.FromEdges(p.from, p.to, p.n)
			Expect(err).NotTo(HaveOccurred())
			b, err := grid.FromCenterSize((p.from+p.to)/2, p.to-p.from, p.n)
			Expect(err).NotTo(HaveOccurred())

			ga, gb := a.Grid(), b.Grid()
			ea, eb := a.Edges(), b.Edges()
			for i := range ga {
				Expect(ga[i]).To(BeNumerically("~", gb[i], 1e-9))
				Expect(ea[i].Start).To(BeNumerically("~", eb[i].Start, 1e-9))
				Expect(ea[i].End).To(BeNumerically("~", eb[i].End, 1e-9))
			}
		},
		Entry("symmetric", params{-1, 1, 10}),
		Entry("shifted", params{3, 17, 9}),
		Entry("large offset", params{1e6, 1e6 + 8, 14}),
	)

	Context("when the range is reversed", func() {
		It("fails with ErrInvalidRange", func() {
			_, err := grid.FromEdges(5.0, 2.0, 10)
			Expect(err).To(MatchError(grid.ErrInvalidRange))
		})
	})

	Context("when the size is zero", func() {
		It("fails with ErrInvalidDimension", func() {
			_, err := grid.FromCenterSize(0.0, 0.0, 10)
			Expect(err).To(MatchError(grid.ErrInvalidDimension))
		})
	})

	Context("when mutated into an invalid state", func() {
		var s grid.LinearSpace[float64]

		BeforeEach(func() {
			var err error
			s, err = grid.FromCenterSize(2.0, 6.0, 3)
			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects a non-positive size and keeps the old one", func() {
			Expect(s.SetSize(-1)).To(MatchError(grid.ErrInvalidDimension))
			Expect(s.SetSize(math.Inf(1))).To(MatchError(grid.ErrInvalidDimension))
			Expect(s.Size()).To(Equal(6.0))
			Expect(s.PixelSize()).To(Equal(2.0))
		})

		It("rejects a non-positive pixel count and keeps the old one", func() {
			Expect(s.SetNumPix(0)).To(MatchError(grid.ErrInvalidDimension))
			Expect(s.NumPix()).To(Equal(3))
			Expect(s.Grid()).To(Equal([]float64{0, 2, 4}))
		})
	})
})

var _ = Describe("composite grids", func() {
	It("counts pixels as the product of the axis counts", func() {
		g, err := grid.NewPixelGrid(
			grid.Vec2[float64]{X: 1, Y: 3},
			grid.Vec2[float64]{X: 0, Y: 0},
			grid.Vec2[int]{X: 7, Y: 11},
		)
		Expect(err).NotTo(HaveOccurred())
		n := g.NumPix()
		Expect(g.TotalPixels()).To(Equal(n.X * n.Y))
	})

	It("counts voxels as the product of the axis counts", func() {
		g, err := grid.NewVoxelGrid(
			grid.Vec3[float32]{X: 1, Y: 3, Z: 5},
			grid.Vec3[float32]{X: 0, Y: 0, Z: 0},
			grid.Vec3[int]{X: 7, Y: 11, Z: 13},
		)
		Expect(err).NotTo(HaveOccurred())
		n := g.NumPix()
		Expect(g.TotalVoxels()).To(Equal(n.X * n.Y * n.Z))
	})

	It("keeps axes independent", func() {
		g, err := grid.NewPixelGrid(
			grid.Vec2[float64]{X: 10, Y: 0.5},
			grid.Vec2[float64]{X: -3, Y: 100},
			grid.Vec2[int]{X: 5, Y: 2},
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.XSpace().Grid()).To(HaveLen(5))
		Expect(g.YSpace().Grid()).To(HaveLen(2))
		Expect(g.PixelSize()).To(Equal(grid.Vec2[float64]{X: 2, Y: 0.25}))
	})

	It("surfaces the failing axis error unchanged", func() {
		_, err := grid.NewVoxelGrid(
			grid.Vec3[float64]{X: 1, Y: 1, Z: 1},
			grid.Vec3[float64]{},
			grid.Vec3[int]{X: 1, Y: 1, Z: 0},
		)
		var dimErr *grid.DimensionError
		Expect(errors.As(err, &dimErr)).To(BeTrue())
		Expect(dimErr.Field).To(Equal("numPix"))
	})
})
