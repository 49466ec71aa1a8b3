package geodesic

import (
	"fmt"
	"math"

	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/geom"
	"github.com/hupe1980/meshgeo/internal/queue"
	"github.com/hupe1980/meshgeo/mesh"
	"github.com/hupe1980/meshgeo/progress"
)

// progressInterval is the number of popped edges between progress reports.
const progressInterval = 1024

type marcher struct {
	store  mesh.Store
	radius float64
	weight float64
	opts   Options
	cfg    config

	st    *state
	faces *bitset.BitSet
	res   *Result

	// seedVertices holds vertex seeds, which never trigger an abort.
	seedVertices map[mesh.VertexID]struct{}

	bounded bool
	aborted bool
}

// March computes approximate geodesic distances from seeds. Multiple seeds
// share one front, so every vertex ends up with the minimum over all seeds
// and Entry.Origin names the seed that won.
//
// The returned Result owns pooled storage; call Release when done.
func March(store mesh.Store, seeds []Seed, radius float64, opts Options, optFns ...Option) (*Result, error) {
	cfg := config{clampWarn: DefaultClampWarnThreshold}
	for _, fn := range optFns {
		fn(&cfg)
	}
	cfg.progress = progress.OrNoop(cfg.progress)

	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no seeds", ErrInvalidSeed)
	}
	for _, s := range seeds {
		if err := s.validate(store); err != nil {
			return nil, err
		}
	}
	if math.IsNaN(radius) || radius <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if opts.WeightByScalar && !store.HasScalars() {
		return nil, ErrMissingScalarField
	}

	faces := opts.FaceVisited
	if faces == nil {
		faces = bitset.New(store.FaceCount())
	} else if err := faces.Require(store.FaceCount()); err != nil {
		return nil, fmt.Errorf("%w: face bitset: %w", mesh.ErrInvalidArgument, err)
	}
	defer faces.ClearAll()

	m := &marcher{
		store:  store,
		radius: radius,
		weight: opts.weight(),
		opts:   opts,
		cfg:    cfg,
		st:     getState(),
		faces:  faces,
		res:    &Result{seeds: append([]Seed(nil), seeds...)},
	}
	m.res.st = m.st
	for _, s := range seeds {
		if s.Kind == SeedVertex {
			if m.seedVertices == nil {
				m.seedVertices = make(map[mesh.VertexID]struct{}, len(seeds))
			}
			m.seedVertices[mesh.VertexID(s.Index)] = struct{}{}
		}
	}

	if err := m.run(); err != nil {
		m.res.Release()
		return nil, err
	}
	m.finish()
	return m.res, nil
}

func (m *marcher) run() error {
	for i, s := range m.res.seeds {
		var err error
		if s.Kind == SeedFace {
			err = m.seedFace(mesh.FaceID(s.Index), i)
		} else {
			err = m.seedVertex(mesh.VertexID(s.Index), i)
		}
		if err != nil {
			return err
		}
	}
	if m.aborted {
		return nil
	}

	stats := &m.res.Stats
	for {
		it, ok := m.st.front.Pop()
		if !ok {
			return nil
		}
		stats.Steps++
		if stats.Steps%progressInterval == 0 {
			m.cfg.progress.Report(stats.Unfolds, m.store.FaceCount())
		}
		if it.Min > m.radius {
			m.bounded = true
			return nil
		}

		fe := *m.st.edges.Get(it.Handle)
		ea, eb := m.st.entries.Get(fe.a), m.st.entries.Get(fe.b)
		near, origin := ea, ea.origin
		if ea.dist > eb.dist {
			near, origin = eb, eb.origin
		}
		m.settle(near)

		g := m.store.NeighborAcross(fe.face, fe.edge)
		if g == mesh.InvalidFace || m.faces.TestAndMark(uint32(g)) {
			continue
		}
		ge, ok := m.store.EdgeIndex(g, ea.vertex, eb.vertex)
		if !ok {
			continue
		}
		c, e1, e2 := m.store.OppositeVertexAndEdges(g, ge)

		pa, pb, pc := m.position(ea.vertex), m.position(eb.vertex), m.position(c)
		u := geom.Unfold(
			geom.Known{Dist: ea.dist, Angle: ea.angle},
			geom.Known{Dist: eb.dist, Angle: eb.angle},
			geom.Dist(pa, pb), geom.Dist(pa, pc), geom.Dist(pb, pc),
		)
		stats.Unfolds++
		stats.Clamps += u.Clamps
		if u.Fallback {
			stats.Fallbacks++
		}
		if u.Degenerate {
			stats.Degenerate++
		}

		// The unfolded source may project between A and B, which would put
		// C below the key being expanded. Keep estimates monotone.
		if err := m.reach(c, math.Max(u.Distance, it.Min), u.Angle, origin, true); err != nil {
			return err
		}
		if m.aborted {
			return nil
		}

		if err := m.pushEdge(g, e1, it.Min); err != nil {
			return err
		}
		if err := m.pushEdge(g, e2, it.Min); err != nil {
			return err
		}
	}
}

// seedVertex settles v at distance zero and queues the edges opposite v.
func (m *marcher) seedVertex(v mesh.VertexID, origin int) error {
	faces := m.store.FacesOf(v)
	ps := m.position(v)

	first := m.store.FaceVertices(faces[0])
	var ref geom.Vec3
	for _, w := range first {
		if w != v {
			ref = ref.Add(m.position(w).Sub(ps))
		}
	}
	if ref.Len() <= geom.DegenerateEpsilon {
		return fmt.Errorf("%w: seed vertex %d", ErrEmptyReferenceVector, v)
	}
	normal := m.store.Normal(v)

	if err := m.reach(v, 0, 0, origin, false); err != nil {
		return err
	}
	m.settle(m.st.entries.Get(m.st.index[v]))

	for _, f := range faces {
		e, ok := m.store.OppositeEdge(f, v)
		if !ok {
			continue
		}
		tri := m.store.FaceVertices(f)
		for _, w := range [2]mesh.VertexID{tri[e], tri[e.Next()]} {
			d := m.position(w).Sub(ps)
			if err := m.reach(w, d.Len(), geom.SignedAngle(d, ref, normal), origin, true); err != nil {
				return err
			}
		}
		m.faces.Mark(uint32(f))
		if err := m.pushEdge(f, e, 0); err != nil {
			return err
		}
	}
	return nil
}

// seedFace measures the vertices of f from its centre of gravity and queues
// all three edges.
func (m *marcher) seedFace(f mesh.FaceID, origin int) error {
	tri := m.store.FaceVertices(f)
	p := [3]geom.Vec3{m.position(tri[0]), m.position(tri[1]), m.position(tri[2])}
	cog := geom.Centroid(p[0], p[1], p[2])
	ref := p[0].Sub(cog)
	normal := m.store.FaceNormal(f)

	for i, w := range tri {
		d := p[i].Sub(cog)
		if err := m.reach(w, d.Len(), geom.SignedAngle(d, ref, normal), origin, true); err != nil {
			return err
		}
	}
	m.faces.Mark(uint32(f))
	for e := mesh.EdgeAB; e <= mesh.EdgeCA; e++ {
		if err := m.pushEdge(f, e, 0); err != nil {
			return err
		}
	}
	return nil
}

// reach records d as the distance of v if v is new, or relaxes the entry of
// an unsettled v when d is strictly smaller. A newly reached vertex carrying
// FlagAbortMarching stops the march when checkAbort is set, unless v is one
// of the vertex seeds.
func (m *marcher) reach(v mesh.VertexID, d, angle float64, origin int, checkAbort bool) error {
	if math.IsNaN(d) {
		return fmt.Errorf("%w: vertex %d", ErrNaNDistance, v)
	}
	if h, ok := m.st.index[v]; ok {
		e := m.st.entries.Get(h)
		if !e.settled && d < e.dist {
			e.dist, e.angle, e.origin = d, angle, origin
			m.res.Stats.Relaxations++
		}
		return nil
	}

	h, e, err := m.st.entries.Alloc()
	if err != nil {
		return err
	}
	*e = entry{vertex: v, dist: d, angle: angle, origin: origin}
	m.st.index[v] = h

	if checkAbort && !m.aborted && m.store.Flag(v, mesh.FlagAbortMarching) && !m.isSeedVertex(v) {
		m.aborted = true
		m.res.AbortVertex = v
	}
	return nil
}

func (m *marcher) isSeedVertex(v mesh.VertexID) bool {
	_, ok := m.seedVertices[v]
	return ok
}

func (m *marcher) settle(e *entry) {
	if e.settled {
		return
	}
	e.settled = true
	if m.opts.RecordOrder {
		m.res.Order = append(m.res.Order, Settled{Vertex: e.vertex, Distance: e.dist})
	}
}

// pushEdge queues edge e of face f. The key is the nearer endpoint distance,
// raised to at least floor so that keys leave the front in order.
func (m *marcher) pushEdge(f mesh.FaceID, e mesh.Edge, floor float64) error {
	tri := m.store.FaceVertices(f)
	ha, hb := m.st.index[tri[e]], m.st.index[tri[e.Next()]]
	da, db := m.st.entries.Get(ha).dist, m.st.entries.Get(hb).dist
	lo, hi := math.Min(da, db), math.Max(da, db)
	if lo > m.radius {
		m.bounded = true
		return nil
	}

	h, fe, err := m.st.edges.Alloc()
	if err != nil {
		return err
	}
	*fe = frontierEdge{face: f, edge: e, a: ha, b: hb}
	m.st.front.Push(queue.Item{Handle: h, Min: math.Max(lo, floor), Max: hi})
	if n := m.st.front.Len(); n > m.res.Stats.MaxFront {
		m.res.Stats.MaxFront = n
	}
	return nil
}

// position returns the vertex position, displaced along the normal when
// weighting is enabled.
func (m *marcher) position(v mesh.VertexID) geom.Vec3 {
	p := m.store.Position(v)
	if m.weight != 0 {
		p = p.Add(m.store.Normal(v).Scale(m.store.Scalar(v) * m.weight))
	}
	return p
}

func (m *marcher) finish() {
	res := m.res
	res.Stats.Reached = m.st.entries.Len()
	switch {
	case m.aborted:
		res.Stop = StopAbort
	case m.bounded:
		res.Stop = StopRadius
	default:
		res.Stop = StopExhausted
	}

	if m.opts.WriteBackToScalar {
		m.writeBack()
	}

	m.cfg.progress.Report(m.store.FaceCount(), m.store.FaceCount())

	if l := m.cfg.logger; l != nil {
		st := res.Stats
		l.Debug("geodesic march",
			"seeds", len(res.seeds),
			"radius", m.radius,
			"stop", res.Stop.String(),
			"reached", st.Reached,
			"steps", st.Steps,
			"unfolds", st.Unfolds,
			"max_front", st.MaxFront,
		)
		if st.Clamps > m.cfg.clampWarn {
			l.Warn("numeric clamps during geodesic march",
				"clamps", st.Clamps,
				"threshold", m.cfg.clampWarn,
				"unfolds", st.Unfolds,
			)
		}
		if st.Degenerate > 0 {
			l.Warn("degenerate triangles during geodesic march",
				"degenerate", st.Degenerate,
				"fallbacks", st.Fallbacks,
			)
		}
	}
}

func (m *marcher) writeBack() {
	if m.opts.ResetUnreached {
		for v := range m.store.VertexCount() {
			if _, ok := m.st.index[mesh.VertexID(v)]; !ok {
				m.store.SetScalar(mesh.VertexID(v), math.NaN())
			}
		}
	}
	for h := range m.st.entries.Len() {
		e := m.st.entries.Get(uint32(h))
		m.store.SetScalar(e.vertex, e.dist)
	}
}
