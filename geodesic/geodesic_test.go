package geodesic_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/geom"
	"github.com/hupe1980/meshgeo/mesh"
	"github.com/hupe1980/meshgeo/progress"
	"github.com/hupe1980/meshgeo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var patterns = map[string]testutil.Pattern{
	"uniform":    testutil.Uniform,
	"union-jack": testutil.UnionJack,
}

func march(t *testing.T, store mesh.Store, seeds []geodesic.Seed, radius float64, opts geodesic.Options, fns ...geodesic.Option) *geodesic.Result {
	t.Helper()
	res, err := geodesic.March(store, seeds, radius, opts, fns...)
	require.NoError(t, err)
	t.Cleanup(res.Release)
	return res
}

func TestEquilateralTriangle(t *testing.T) {
	m, err := testutil.EquilateralTriangle(context.Background())
	require.NoError(t, err)

	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(0)}, 2, geodesic.Options{})
	assert.Equal(t, 3, res.Len())
	assert.InDelta(t, 0.0, res.Distance(0), 1e-12)
	assert.InDelta(t, 1.0, res.Distance(1), 1e-6)
	assert.InDelta(t, 1.0, res.Distance(2), 1e-6)
	assert.Equal(t, geodesic.StopExhausted, res.Stop)

	b, _ := res.Get(1)
	c, _ := res.Get(2)
	assert.InDelta(t, -math.Pi/6, b.Angle, 1e-9)
	assert.InDelta(t, math.Pi/6, c.Angle, 1e-9)
	assert.Equal(t, 0, b.Origin)
}

func TestFlatPatchMatchesEuclidean(t *testing.T) {
	const n = 21
	for name, p := range patterns {
		t.Run(name, func(t *testing.T) {
			m, err := testutil.Grid(context.Background(), n, n, 1.0, p)
			require.NoError(t, err)
			seed := testutil.GridIndex(n, n/2, n/2)

			res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 100, geodesic.Options{})
			require.Equal(t, m.VertexCount(), res.Len())

			origin := m.Position(seed)
			for y := 1; y < n-1; y++ {
				for x := 1; x < n-1; x++ {
					v := testutil.GridIndex(n, x, y)
					want := geom.Dist(m.Position(v), origin)
					got := res.Distance(v)
					if want == 0 {
						assert.Zero(t, got)
						continue
					}
					assert.LessOrEqual(t, math.Abs(got-want)/want, 1e-3, "vertex (%d,%d)", x, y)
				}
			}
		})
	}
}

func heightFields() map[string]func(x, y float64) float64 {
	rng := testutil.NewRNG(5)
	noise := rng.Field(15*15, 0, 0.3)
	return map[string]func(x, y float64) float64{
		"flat": nil,
		"waves": func(x, y float64) float64 {
			return 0.3 * math.Sin(x) * math.Cos(y)
		},
		"noise": func(x, y float64) float64 {
			return noise[int(y)*15+int(x)]
		},
	}
}

func TestMonotonicFinalization(t *testing.T) {
	const n = 15
	for pname, p := range patterns {
		for hname, h := range heightFields() {
			t.Run(pname+"/"+hname, func(t *testing.T) {
				pos, tris := testutil.GridGeometry(n, n, 1.0, p, h)
				m, err := mesh.New(context.Background(), pos, tris)
				require.NoError(t, err)
				seed := testutil.GridIndex(n, 7, 7)

				res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 100, geodesic.Options{RecordOrder: true})
				require.NotEmpty(t, res.Order)
				assert.Equal(t, seed, res.Order[0].Vertex)

				seen := map[mesh.VertexID]bool{}
				for i, s := range res.Order {
					assert.False(t, seen[s.Vertex], "vertex %d settled twice", s.Vertex)
					seen[s.Vertex] = true
					assert.Equal(t, res.Distance(s.Vertex), s.Distance, "settled distance changed")
					if i > 0 {
						assert.GreaterOrEqual(t, s.Distance, res.Order[i-1].Distance-1e-12)
					}
				}
			})
		}
	}
}

func TestMonotonicFinalizationThinTriangles(t *testing.T) {
	// The seed projects onto AB between A and B, so unfolding across AB
	// lands C closer to the seed than either endpoint.
	pos := []geom.Vec3{{0, 0, 0}, {-0.2, 1, 0}, {0.2, 1, 0}, {0, 1.01, 0}}
	tris := [][3]uint32{{0, 2, 1}, {1, 2, 3}}
	m, err := mesh.New(context.Background(), pos, tris)
	require.NoError(t, err)

	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(0)}, 10, geodesic.Options{RecordOrder: true})
	require.Equal(t, 4, res.Len())

	for i := 1; i < len(res.Order); i++ {
		assert.GreaterOrEqual(t, res.Order[i].Distance, res.Order[i-1].Distance,
			"order decreased at %d", i)
	}
	for _, s := range res.Order {
		assert.Equal(t, res.Distance(s.Vertex), s.Distance)
	}

	edge := math.Hypot(0.2, 1)
	assert.InDelta(t, edge, res.Distance(1), 1e-12)
	assert.InDelta(t, edge, res.Distance(2), 1e-12)
	assert.InDelta(t, edge, res.Distance(3), 1e-12)
}

func TestIdempotence(t *testing.T) {
	pos, tris := testutil.GridGeometry(15, 15, 0.5, testutil.UnionJack, func(x, y float64) float64 {
		return 0.2 * math.Cos(2*x+y)
	})
	m, err := mesh.New(context.Background(), pos, tris)
	require.NoError(t, err)
	seeds := []geodesic.Seed{geodesic.VertexSeed(30), geodesic.FaceSeed(200)}

	a := march(t, m, seeds, 3, geodesic.Options{})
	b := march(t, m, seeds, 3, geodesic.Options{})
	assert.Equal(t, a.Map(), b.Map())
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Stop, b.Stop)
}

func TestWeightedMonotonicity(t *testing.T) {
	const n = 15
	rng := testutil.NewRNG(1)
	fields := map[string]func(x, y float64) float64{
		"tilt": func(x, _ float64) float64 { return 0.5 * x },
		"bump": func(x, y float64) float64 { return 0.3 * math.Sin(x) * math.Cos(y) },
	}
	noise := rng.Field(n*n, 0, 0.2)

	for name, fn := range fields {
		t.Run(name, func(t *testing.T) {
			scalars := make([]float64, n*n)
			for y := range n {
				for x := range n {
					scalars[y*n+x] = fn(float64(x), float64(y))
				}
			}
			checkWeighted(t, n, scalars)
		})
	}
	t.Run("noise", func(t *testing.T) {
		checkWeighted(t, n, noise)
	})
}

func checkWeighted(t *testing.T, n int, scalars []float64) {
	t.Helper()
	m, err := testutil.Grid(context.Background(), n, n, 1.0, testutil.Uniform, mesh.WithScalars(scalars))
	require.NoError(t, err)
	seeds := []geodesic.Seed{geodesic.VertexSeed(testutil.GridIndex(n, 7, 7))}

	prev := march(t, m, seeds, 100, geodesic.Options{}).Map()
	for _, factor := range []float64{0.5, 1, 2} {
		cur := march(t, m, seeds, 100, geodesic.Options{WeightByScalar: true, WeightFactor: factor}).Map()
		for v, e := range prev {
			next, ok := cur[v]
			require.True(t, ok, "vertex %d lost with factor %v", v, factor)
			assert.GreaterOrEqual(t, next.Distance, e.Distance-1e-9, "vertex %d factor %v", v, factor)
		}
		prev = cur
	}
}

func TestSoftRadius(t *testing.T) {
	const n = 21
	m, err := testutil.Grid(context.Background(), n, n, 1.0, testutil.UnionJack)
	require.NoError(t, err)
	seed := testutil.GridIndex(n, 10, 10)
	origin := m.Position(seed)

	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 3, geodesic.Options{})
	assert.Equal(t, geodesic.StopRadius, res.Stop)
	assert.Less(t, res.Len(), m.VertexCount())

	for v := mesh.VertexID(0); int(v) < m.VertexCount(); v++ {
		d := geom.Dist(m.Position(v), origin)
		_, ok := res.Get(v)
		if d <= 3 {
			assert.True(t, ok, "vertex %d inside radius not reached", v)
		}
		if d > 4.5 {
			assert.False(t, ok, "vertex %d far outside radius reached", v)
		}
	}
}

func TestAbortFlag(t *testing.T) {
	const n = 11
	ctx := context.Background()

	t.Run("during march", func(t *testing.T) {
		m, err := testutil.Grid(ctx, n, n, 1.0, testutil.Uniform)
		require.NoError(t, err)
		seed := testutil.GridIndex(n, 5, 5)
		stop := testutil.GridIndex(n, 8, 5)
		m.SetFlag(stop, mesh.FlagAbortMarching)

		res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, math.Inf(1), geodesic.Options{})
		assert.Equal(t, geodesic.StopAbort, res.Stop)
		assert.Equal(t, stop, res.AbortVertex)
		_, ok := res.Get(stop)
		assert.True(t, ok)
		assert.Less(t, res.Len(), m.VertexCount())
		_, ok = res.Get(testutil.GridIndex(n, 0, 0))
		assert.False(t, ok)
	})

	t.Run("at seeding", func(t *testing.T) {
		m, err := testutil.Grid(ctx, n, n, 1.0, testutil.Uniform)
		require.NoError(t, err)
		seed := testutil.GridIndex(n, 5, 5)
		m.SetFlag(testutil.GridIndex(n, 6, 5), mesh.FlagAbortMarching)

		res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 10, geodesic.Options{})
		assert.Equal(t, geodesic.StopAbort, res.Stop)
		assert.Zero(t, res.Stats.Steps)
		assert.Equal(t, 1+len(m.Neighbors(seed, nil))/2, res.Len())
	})

	t.Run("flag on seed is ignored", func(t *testing.T) {
		m, err := testutil.Grid(ctx, n, n, 1.0, testutil.Uniform)
		require.NoError(t, err)
		seed := testutil.GridIndex(n, 5, 5)
		m.SetFlag(seed, mesh.FlagAbortMarching)

		res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 100, geodesic.Options{})
		assert.Equal(t, geodesic.StopExhausted, res.Stop)
		assert.Equal(t, m.VertexCount(), res.Len())
	})
}

func TestAbortFlagOnLaterSeed(t *testing.T) {
	const n = 11
	m, err := testutil.Grid(context.Background(), n, n, 1.0, testutil.Uniform)
	require.NoError(t, err)
	s0, s1 := testutil.GridIndex(n, 4, 5), testutil.GridIndex(n, 5, 5)
	m.SetFlag(s1, mesh.FlagAbortMarching)

	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(s0), geodesic.VertexSeed(s1)}, 100, geodesic.Options{})
	assert.Equal(t, geodesic.StopExhausted, res.Stop)
	assert.Equal(t, m.VertexCount(), res.Len())

	e, ok := res.Get(s1)
	require.True(t, ok)
	assert.Equal(t, 0.0, e.Distance)
	assert.Equal(t, 1, e.Origin)
}

func TestMultipleSeeds(t *testing.T) {
	const n = 11
	for name, p := range patterns {
		t.Run(name, func(t *testing.T) {
			m, err := testutil.Grid(context.Background(), n, n, 1.0, p)
			require.NoError(t, err)
			s0, s1 := testutil.GridIndex(n, 2, 5), testutil.GridIndex(n, 8, 5)
			seeds := []geodesic.Seed{geodesic.VertexSeed(s0), geodesic.VertexSeed(s1)}

			res := march(t, m, seeds, 100, geodesic.Options{})
			require.Equal(t, m.VertexCount(), res.Len())

			res.Each(func(v mesh.VertexID, e geodesic.Entry) bool {
				d0 := geom.Dist(m.Position(v), m.Position(s0))
				d1 := geom.Dist(m.Position(v), m.Position(s1))
				assert.InDelta(t, math.Min(d0, d1), e.Distance, 1e-6, "vertex %d", v)
				if math.Abs(d0-d1) > 1e-6 {
					want := 0
					if d1 < d0 {
						want = 1
					}
					assert.Equal(t, want, e.Origin, "vertex %d", v)
				}
				return true
			})

			groups := res.GroupBySeed()
			require.Len(t, groups, 2)
			assert.Equal(t, res.Len(), len(groups[0])+len(groups[1]))
			assert.Equal(t, s0, groups[0][0])
			assert.Equal(t, s1, groups[1][0])
			for i, g := range groups {
				for j := 1; j < len(g); j++ {
					assert.LessOrEqual(t, res.Distance(g[j-1]), res.Distance(g[j]))
					e, _ := res.Get(g[j])
					assert.Equal(t, i, e.Origin)
				}
			}
		})
	}
}

func TestFaceSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("single triangle", func(t *testing.T) {
		m, err := testutil.EquilateralTriangle(ctx)
		require.NoError(t, err)
		res := march(t, m, []geodesic.Seed{geodesic.FaceSeed(0)}, 1, geodesic.Options{})
		require.Equal(t, 3, res.Len())
		for v := mesh.VertexID(0); v < 3; v++ {
			assert.InDelta(t, 1/math.Sqrt(3), res.Distance(v), 1e-9)
		}
		a, _ := res.Get(0)
		b, _ := res.Get(1)
		c, _ := res.Get(2)
		assert.InDelta(t, 0, a.Angle, 1e-9)
		assert.InDelta(t, 2*math.Pi/3, b.Angle, 1e-9)
		assert.InDelta(t, -2*math.Pi/3, c.Angle, 1e-9)
	})

	t.Run("flat grid", func(t *testing.T) {
		const n = 11
		for name, p := range patterns {
			m, err := testutil.Grid(ctx, n, n, 1.0, p)
			require.NoError(t, err)
			f := m.FacesOf(testutil.GridIndex(n, 5, 5))[0]
			tri := m.FaceVertices(f)
			cog := geom.Centroid(m.Position(tri[0]), m.Position(tri[1]), m.Position(tri[2]))

			res := march(t, m, []geodesic.Seed{geodesic.FaceSeed(f)}, 100, geodesic.Options{})
			require.Equal(t, m.VertexCount(), res.Len(), name)
			res.Each(func(v mesh.VertexID, e geodesic.Entry) bool {
				want := geom.Dist(m.Position(v), cog)
				assert.GreaterOrEqual(t, e.Distance, want-1e-9, "%s vertex %d", name, v)
				if p == testutil.UnionJack {
					assert.InDelta(t, want, e.Distance, 1e-6, "%s vertex %d", name, v)
				}
				return true
			})
		}
	})
}

func TestWriteBack(t *testing.T) {
	const n = 11
	ctx := context.Background()
	m, err := testutil.Grid(ctx, n, n, 1.0, testutil.Uniform)
	require.NoError(t, err)
	for v := mesh.VertexID(0); int(v) < m.VertexCount(); v++ {
		m.SetScalar(v, -1)
	}
	seed := testutil.GridIndex(n, 5, 5)

	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(seed)}, 1.5, geodesic.Options{
		WriteBackToScalar: true,
		ResetUnreached:    true,
	})
	for v := mesh.VertexID(0); int(v) < m.VertexCount(); v++ {
		if d, ok := res.Get(v); ok {
			assert.Equal(t, d.Distance, m.Scalar(v))
		} else {
			assert.True(t, math.IsNaN(m.Scalar(v)), "vertex %d", v)
		}
	}
	assert.Equal(t, 0.0, m.Scalar(seed))
}

func TestFaceBitsetCleanliness(t *testing.T) {
	m, err := testutil.Grid(context.Background(), 9, 9, 1.0, testutil.UnionJack)
	require.NoError(t, err)
	faces := bitset.New(m.FaceCount())

	for _, radius := range []float64{0.5, 2, 100} {
		res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(40)}, radius, geodesic.Options{FaceVisited: faces})
		assert.NotZero(t, res.Len())
		assert.True(t, faces.IsClear())
	}

	_, err = geodesic.March(m, []geodesic.Seed{geodesic.VertexSeed(40)}, 1, geodesic.Options{FaceVisited: bitset.New(3)})
	var ce *bitset.CapacityError
	assert.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
}

func TestReleasedResult(t *testing.T) {
	m, err := testutil.EquilateralTriangle(context.Background())
	require.NoError(t, err)
	res, err := geodesic.March(m, []geodesic.Seed{geodesic.VertexSeed(0)}, 2, geodesic.Options{})
	require.NoError(t, err)

	rb := res.Reached()
	assert.Equal(t, []uint32{0, 1, 2}, rb.ToArray())

	res.Release()
	res.Release()
	assert.Zero(t, res.Len())
	_, ok := res.Get(1)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(res.Distance(1)))
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	m, err := testutil.Strip(ctx)
	require.NoError(t, err)
	seeds := []geodesic.Seed{geodesic.VertexSeed(0)}

	tests := []struct {
		name   string
		seeds  []geodesic.Seed
		radius float64
		opts   geodesic.Options
		want   error
	}{
		{"no seeds", nil, 1, geodesic.Options{}, geodesic.ErrInvalidSeed},
		{"isolated vertex", []geodesic.Seed{geodesic.VertexSeed(6)}, 1, geodesic.Options{}, mesh.ErrNoAdjacency},
		{"vertex out of range", []geodesic.Seed{geodesic.VertexSeed(60)}, 1, geodesic.Options{}, mesh.ErrOutOfRange},
		{"face out of range", []geodesic.Seed{geodesic.FaceSeed(2)}, 1, geodesic.Options{}, geodesic.ErrInvalidSeed},
		{"unknown kind", []geodesic.Seed{{Kind: 9}}, 1, geodesic.Options{}, geodesic.ErrInvalidSeed},
		{"zero radius", seeds, 0, geodesic.Options{}, geodesic.ErrInvalidRadius},
		{"nan radius", seeds, math.NaN(), geodesic.Options{}, geodesic.ErrInvalidRadius},
		{"missing scalars", seeds, 1, geodesic.Options{WeightByScalar: true}, geodesic.ErrMissingScalarField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geodesic.March(m, tt.seeds, tt.radius, tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("argument errors share a root", func(t *testing.T) {
		_, err := geodesic.March(m, nil, 1, geodesic.Options{})
		assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
		_, err = geodesic.March(m, seeds, -1, geodesic.Options{})
		assert.ErrorIs(t, err, mesh.ErrInvalidArgument)
	})
}

func TestNaNDistance(t *testing.T) {
	scalars := make([]float64, 9)
	scalars[testutil.GridIndex(3, 2, 1)] = math.NaN()
	m, err := testutil.Grid(context.Background(), 3, 3, 1.0, testutil.UnionJack, mesh.WithScalars(scalars))
	require.NoError(t, err)

	_, err = geodesic.March(m, []geodesic.Seed{geodesic.VertexSeed(testutil.GridIndex(3, 1, 1))}, 10,
		geodesic.Options{WeightByScalar: true})
	assert.ErrorIs(t, err, geodesic.ErrNaNDistance)
}

func TestEmptyReferenceVector(t *testing.T) {
	// The two spokes of the first face cancel out.
	pos := []geom.Vec3{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}}
	m, err := mesh.New(context.Background(), pos, [][3]uint32{{0, 1, 2}})
	require.NoError(t, err)

	_, err = geodesic.March(m, []geodesic.Seed{geodesic.VertexSeed(0)}, 1, geodesic.Options{})
	assert.ErrorIs(t, err, geodesic.ErrEmptyReferenceVector)
}

func TestDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var reports int
	var last [2]int
	sink := progress.Func(func(done, total int) {
		reports++
		last = [2]int{done, total}
	})

	m, err := testutil.Grid(context.Background(), 15, 15, 1.0, testutil.UnionJack)
	require.NoError(t, err)
	res := march(t, m, []geodesic.Seed{geodesic.VertexSeed(112)}, 100, geodesic.Options{},
		geodesic.WithLogger(logger),
		geodesic.WithProgress(sink),
		geodesic.WithClampWarnThreshold(-1),
	)

	assert.Positive(t, res.Stats.Unfolds)
	assert.Positive(t, reports)
	assert.Equal(t, [2]int{m.FaceCount(), m.FaceCount()}, last)
	assert.Contains(t, buf.String(), "geodesic march")
	assert.Contains(t, buf.String(), "numeric clamps during geodesic march")
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "vertex:3", geodesic.VertexSeed(3).String())
	assert.Equal(t, "face:4", geodesic.FaceSeed(4).String())
	assert.Equal(t, "abort", geodesic.StopAbort.String())
	assert.Equal(t, "radius", geodesic.StopRadius.String())
	assert.Equal(t, "exhausted", geodesic.StopExhausted.String())
}
