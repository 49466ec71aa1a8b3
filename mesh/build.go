package mesh

import (
	"context"
	"fmt"

	"github.com/hupe1980/meshgeo/geom"
	"github.com/hupe1980/meshgeo/internal/conv"
	"golang.org/x/sync/errgroup"
)

// ctxCheckInterval is how many primitives a worker processes between
// cancellation checks.
const ctxCheckInterval = 4096

// New builds a Mesh from vertex positions and triangles given as vertex index
// triples. Per-primitive work runs on a worker pool; New returns once every
// worker has joined.
func New(ctx context.Context, positions []geom.Vec3, triangles [][3]uint32, optFns ...Option) (*Mesh, error) {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	nv := len(positions)
	if _, err := conv.PrimitiveCount(nv); err != nil {
		return nil, fmt.Errorf("%w: vertex count: %w", ErrInvalidArgument, err)
	}
	if _, err := conv.PrimitiveCount(len(triangles)); err != nil {
		return nil, fmt.Errorf("%w: face count: %w", ErrInvalidArgument, err)
	}
	if opts.normals != nil && len(opts.normals) != nv {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidArgument, len(opts.normals), nv)
	}
	if opts.scalars != nil && len(opts.scalars) != nv {
		return nil, fmt.Errorf("%w: %d scalars for %d vertices", ErrInvalidArgument, len(opts.scalars), nv)
	}
	for i, p := range positions {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d has non-finite position", ErrInvalidArgument, i)
		}
	}

	m := &Mesh{
		positions:   append([]geom.Vec3(nil), positions...),
		normals:     make([]geom.Vec3, nv),
		flags:       make([]Flag, nv),
		faces:       make([][3]VertexID, len(triangles)),
		neighbors:   make([][3]FaceID, len(triangles)),
		faceNormals: make([]geom.Vec3, len(triangles)),
		faceAreas:   make([]float64, len(triangles)),
	}
	if opts.scalars != nil {
		m.scalars = append([]float64(nil), opts.scalars...)
	}

	for i, t := range triangles {
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			return nil, &ErrBadTriangle{Face: i, Vertices: t, cause: ErrInvalidArgument}
		}
		for _, v := range t {
			if int(v) >= nv {
				return nil, &ErrBadTriangle{Face: i, Vertices: t, cause: ErrOutOfRange}
			}
		}
		m.faces[i] = [3]VertexID{VertexID(t[0]), VertexID(t[1]), VertexID(t[2])}
	}

	m.buildIncidence()

	workers := opts.workerCount()

	// Phase 1: face geometry and face-to-face connectivity only read the
	// incidence table.
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for f := w; f < len(m.faces); f += workers {
				if (f/workers)%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				m.setupFace(FaceID(f))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: vertex normals need every face normal.
	g, gctx = errgroup.WithContext(ctx)
	for w := range workers {
		g.Go(func() error {
			for v := w; v < nv; v += workers {
				if (v/workers)%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if opts.normals != nil {
					m.normals[v] = opts.normals[v].Normalize()
				} else {
					m.normals[v] = m.areaWeightedNormal(VertexID(v))
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.logger != nil {
		opts.logger.Debug("mesh built",
			"vertices", nv,
			"faces", len(m.faces),
			"workers", workers,
		)
	}
	return m, nil
}

// buildIncidence fills the compressed vertex→faces table in ascending face order.
func (m *Mesh) buildIncidence() {
	nv := len(m.positions)
	m.incidentStart = make([]uint32, nv+1)
	for _, tri := range m.faces {
		for _, v := range tri {
			m.incidentStart[v+1]++
		}
	}
	for v := range nv {
		m.incidentStart[v+1] += m.incidentStart[v]
	}
	m.incident = make([]FaceID, m.incidentStart[nv])
	next := append([]uint32(nil), m.incidentStart[:nv]...)
	for f, tri := range m.faces {
		for _, v := range tri {
			m.incident[next[v]] = FaceID(f)
			next[v]++
		}
	}
}

func (m *Mesh) setupFace(f FaceID) {
	tri := m.faces[f]
	a, b, c := m.positions[tri[0]], m.positions[tri[1]], m.positions[tri[2]]
	n := geom.TriangleNormal(a, b, c)
	m.faceAreas[f] = 0.5 * n.Len()
	m.faceNormals[f] = n.Normalize()

	// Across a non-manifold edge the lowest-indexed other face wins.
	for e := EdgeAB; e <= EdgeCA; e++ {
		s, t := tri[e], tri[e.Next()]
		m.neighbors[f][e] = InvalidFace
		for _, g := range m.FacesOf(s) {
			if g == f {
				continue
			}
			if _, ok := edgeIndex(m.faces[g], s, t); ok {
				m.neighbors[f][e] = g
				break
			}
		}
	}
}

func (m *Mesh) areaWeightedNormal(v VertexID) geom.Vec3 {
	var sum geom.Vec3
	for _, f := range m.FacesOf(v) {
		sum = sum.Add(m.faceNormals[f].Scale(m.faceAreas[f]))
	}
	return sum.Normalize()
}
