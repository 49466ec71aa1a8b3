package testutil

import (
	"context"
	"math"

	"github.com/hupe1980/meshgeo/geom"
	"github.com/hupe1980/meshgeo/mesh"
)

// Pattern selects how grid cells are split into two triangles.
type Pattern int

const (
	// Uniform splits every cell along the same diagonal.
	Uniform Pattern = iota
	// UnionJack alternates the diagonal so that every vertex with even x+y
	// is touched by eight faces.
	UnionJack
)

// GridIndex returns the vertex index of grid point (x, y) in a grid nx wide.
func GridIndex(nx, x, y int) mesh.VertexID {
	return mesh.VertexID(y*nx + x)
}

// GridGeometry returns positions and triangles of an nx×ny vertex grid in the
// z=0 plane with the given spacing. height, if not nil, sets z per point.
func GridGeometry(nx, ny int, spacing float64, p Pattern, height func(x, y float64) float64) ([]geom.Vec3, [][3]uint32) {
	positions := make([]geom.Vec3, 0, nx*ny)
	for y := range ny {
		for x := range nx {
			px, py := float64(x)*spacing, float64(y)*spacing
			var pz float64
			if height != nil {
				pz = height(px, py)
			}
			positions = append(positions, geom.Vec3{px, py, pz})
		}
	}

	idx := func(x, y int) uint32 { return uint32(y*nx + x) }
	triangles := make([][3]uint32, 0, 2*(nx-1)*(ny-1))
	for y := 0; y < ny-1; y++ {
		for x := 0; x < nx-1; x++ {
			a, b, c, d := idx(x, y), idx(x+1, y), idx(x+1, y+1), idx(x, y+1)
			if p == Uniform || (x+y)%2 == 0 {
				triangles = append(triangles, [3]uint32{a, b, c}, [3]uint32{a, c, d})
			} else {
				triangles = append(triangles, [3]uint32{a, b, d}, [3]uint32{b, c, d})
			}
		}
	}
	return positions, triangles
}

// Grid builds a flat nx×ny vertex grid.
func Grid(ctx context.Context, nx, ny int, spacing float64, p Pattern, opts ...mesh.Option) (*mesh.Mesh, error) {
	positions, triangles := GridGeometry(nx, ny, spacing, p, nil)
	return mesh.New(ctx, positions, triangles, opts...)
}

// HeightField builds an nx×ny grid displaced along z by height.
func HeightField(ctx context.Context, nx, ny int, spacing float64, height func(x, y float64) float64, opts ...mesh.Option) (*mesh.Mesh, error) {
	positions, triangles := GridGeometry(nx, ny, spacing, Uniform, height)
	return mesh.New(ctx, positions, triangles, opts...)
}

// EquilateralTriangle builds a single unit triangle A=(0,0,0), B=(1,0,0),
// C=(0.5, √3/2, 0).
func EquilateralTriangle(ctx context.Context, opts ...mesh.Option) (*mesh.Mesh, error) {
	positions := []geom.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0.5, math.Sqrt(3) / 2, 0},
	}
	return mesh.New(ctx, positions, [][3]uint32{{0, 1, 2}}, opts...)
}

// Strip builds two disconnected triangles plus one isolated vertex (index 6).
func Strip(ctx context.Context, opts ...mesh.Option) (*mesh.Mesh, error) {
	positions := []geom.Vec3{
		{0, 0, 0}, {1, 0, 0}, {0, 1, 0},
		{10, 0, 0}, {11, 0, 0}, {10, 1, 0},
		{5, 5, 5},
	}
	return mesh.New(ctx, positions, [][3]uint32{{0, 1, 2}, {3, 4, 5}}, opts...)
}
