package meshgeo

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/fieldio"
	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/mesh"
	"github.com/hupe1980/meshgeo/sphere"
)

// Engine runs sphere queries and geodesic marches against one mesh store.
// It owns pooled scratch bitsets sized for the store, so concurrent queries
// never share traversal state. An Engine is safe for concurrent use as long
// as no query writes scalars to a store other queries read.
type Engine struct {
	store    mesh.Store
	vertices *bitset.Pool
	faces    *bitset.Pool
	sem      *semaphore.Weighted
	opts     options
}

// New creates an Engine for store.
func New(store mesh.Store, optFns ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: nil store", ErrInvalidArgument)
	}

	o := applyOptions(optFns)

	e := &Engine{
		store:    store,
		vertices: bitset.NewPool(store.VertexCount()),
		faces:    bitset.NewPool(store.FaceCount()),
		opts:     o,
	}
	if o.maxConcurrent > 0 {
		e.sem = semaphore.NewWeighted(o.maxConcurrent)
	}

	o.logger.Debug("engine created",
		"vertices", store.VertexCount(),
		"faces", store.FaceCount(),
		"sphere_variant", o.sphereVariant.String(),
		"max_concurrent", o.maxConcurrent,
	)

	return e, nil
}

// Store returns the mesh the engine operates on.
func (e *Engine) Store() mesh.Store { return e.store }

// NewVertexBitset returns a bitset sized for the store's vertices.
func (e *Engine) NewVertexBitset() *bitset.BitSet { return bitset.New(e.store.VertexCount()) }

// NewFaceBitset returns a bitset sized for the store's faces.
func (e *Engine) NewFaceBitset() *bitset.BitSet { return bitset.New(e.store.FaceCount()) }

func (e *Engine) acquire(ctx context.Context) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.sem == nil {
		return func() {}, nil
	}
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { e.sem.Release(1) }, nil
}

// QuerySphere returns the faces touched by the sphere of radius around seed,
// using pooled scratch bitsets.
func (e *Engine) QuerySphere(ctx context.Context, seed mesh.VertexID, radius float64, optFns ...sphere.Option) (*sphere.Result, error) {
	vb := e.vertices.Get()
	defer e.vertices.Put(vb)
	fb := e.faces.Get()
	defer e.faces.Put(fb)

	return e.QuerySphereWith(ctx, seed, radius, vb, fb, optFns...)
}

// QuerySphereWith is QuerySphere with caller-owned scratch bitsets. Both are
// cleared on return.
func (e *Engine) QuerySphereWith(ctx context.Context, seed mesh.VertexID, radius float64, vertices, faces *bitset.BitSet, optFns ...sphere.Option) (*sphere.Result, error) {
	release, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	start := time.Now()

	opts := make([]sphere.Option, 0, len(optFns)+2)
	opts = append(opts, sphere.WithVariant(e.opts.sphereVariant), sphere.WithLogger(e.opts.logger.Logger))
	opts = append(opts, optFns...)

	res, err := sphere.Query(e.store, seed, radius, vertices, faces, opts...)
	err = translateError(err)

	faceCount := 0
	if res != nil {
		faceCount = len(res.Faces)
	}
	e.opts.metricsCollector.RecordSphereQuery(time.Since(start), faceCount, err)
	e.opts.logger.LogSphereQuery(ctx, seed, radius, faceCount, err)

	if err != nil {
		return nil, err
	}
	return res, nil
}

// MarchGeodesic computes geodesic distances from seeds up to radius. When
// opts.FaceVisited is nil a pooled face bitset is used. The caller must
// Release the result.
func (e *Engine) MarchGeodesic(ctx context.Context, seeds []geodesic.Seed, radius float64, opts geodesic.Options) (*geodesic.Result, error) {
	release, err := e.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	if opts.FaceVisited == nil {
		fb := e.faces.Get()
		defer e.faces.Put(fb)
		opts.FaceVisited = fb
	}

	start := time.Now()

	res, err := geodesic.March(e.store, seeds, radius, opts,
		geodesic.WithLogger(e.opts.logger.Logger),
		geodesic.WithProgress(e.opts.progress),
		geodesic.WithClampWarnThreshold(e.opts.clampWarn),
	)
	err = translateError(err)

	if err != nil {
		e.opts.metricsCollector.RecordMarch(time.Since(start), 0, geodesic.Stats{}, err)
		e.opts.logger.LogMarch(ctx, len(seeds), radius, nil, err)
		return nil, err
	}

	e.opts.metricsCollector.RecordMarch(time.Since(start), res.Len(), res.Stats, nil)
	e.opts.logger.LogMarch(ctx, len(seeds), radius, res, nil)

	return res, nil
}

// DistanceField marches from seeds and returns a dense per-vertex distance
// slice with NaN for unreached vertices.
func (e *Engine) DistanceField(ctx context.Context, seeds []geodesic.Seed, radius float64, opts geodesic.Options) ([]float64, *geodesic.Result, error) {
	opts.RecordOrder = false
	res, err := e.MarchGeodesic(ctx, seeds, radius, opts)
	if err != nil {
		return nil, nil, err
	}
	field := res.Field(e.store.VertexCount())
	return field, res, nil
}

// ExportField writes a distance field in the block-compressed field format.
func (e *Engine) ExportField(ctx context.Context, w io.Writer, values []float64, optFns ...fieldio.Option) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := fieldio.Write(w, values, optFns...)
	e.opts.logger.LogExport(ctx, len(values), n, err)
	return n, err
}
