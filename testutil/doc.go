// Package testutil provides mesh fixtures for tests, benchmarks and examples.
//
// This package is intended for use in tests and benchmarks only.
//
// # Fixtures
//
//	m, _ := testutil.Grid(ctx, 21, 21, 1.0, testutil.Uniform)    // flat regular grid
//	m, _ := testutil.Grid(ctx, 3, 3, 1.0, testutil.UnionJack)    // 8 faces around the centre
//	m, _ := testutil.EquilateralTriangle(ctx)
//
// # Scalar Fields
//
//	rng := testutil.NewRNG(seed)
//	values := rng.Field(m.VertexCount(), 0, 0.2)
package testutil
