package sphere

import (
	"fmt"
	"math"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/geom"
	"github.com/hupe1980/meshgeo/mesh"
)

// Result holds the outcome of one sphere query.
type Result struct {
	// Faces lists each touched face once, in discovery order. Nil when the
	// query ran WithoutCollect.
	Faces []mesh.FaceID
	// Visited is the number of vertices whose distance was tested.
	Visited int
	// Inside is the number of vertices within the radius.
	Inside int
}

// FaceSet returns the touched faces as a roaring bitmap.
func (r *Result) FaceSet() *roaring.Bitmap {
	rb := roaring.New()
	for _, f := range r.Faces {
		rb.Add(uint32(f))
	}
	return rb
}

var frontierPool = sync.Pool{
	New: func() any {
		s := make([]mesh.VertexID, 0, 256)
		return &s
	},
}

// query is the state of one running sphere query.
type query struct {
	store    mesh.Store
	center   geom.Vec3
	radius   float64
	vertices *bitset.BitSet
	faces    *bitset.BitSet
	opts     *options

	result Result
	seq    int
}

// Query returns every face that has a vertex within radius of the seed,
// reached without leaving the sphere. vertices and faces must be sized for
// the store's vertex and face counts; both are cleared on return.
func Query(store mesh.Store, seed mesh.VertexID, radius float64, vertices, faces *bitset.BitSet, optFns ...Option) (*Result, error) {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if math.IsNaN(radius) || radius <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}
	if int(seed) >= store.VertexCount() {
		return nil, fmt.Errorf("%w: seed vertex %d", mesh.ErrOutOfRange, seed)
	}
	if vertices == nil || faces == nil {
		return nil, fmt.Errorf("%w: nil bitset", mesh.ErrInvalidArgument)
	}
	if err := vertices.Require(store.VertexCount()); err != nil {
		return nil, fmt.Errorf("%w: vertex bitset: %w", mesh.ErrInvalidArgument, err)
	}
	if err := faces.Require(store.FaceCount()); err != nil {
		return nil, fmt.Errorf("%w: face bitset: %w", mesh.ErrInvalidArgument, err)
	}
	if len(store.FacesOf(seed)) == 0 {
		return nil, fmt.Errorf("%w: vertex %d", ErrNoAdjacency, seed)
	}

	defer vertices.ClearAll()
	defer faces.ClearAll()

	q := &query{
		store:    store,
		center:   store.Position(seed),
		radius:   radius,
		vertices: vertices,
		faces:    faces,
		opts:     &opts,
	}
	if !opts.noCollect {
		q.result.Faces = make([]mesh.FaceID, 0, 16)
	}

	frontier := frontierPool.Get().(*[]mesh.VertexID)
	switch opts.variant {
	case VariantRing:
		*frontier = q.runRing(seed, (*frontier)[:0])
	default:
		*frontier = q.runWindow(seed, (*frontier)[:0])
	}
	*frontier = (*frontier)[:0]
	frontierPool.Put(frontier)

	if opts.logger != nil {
		opts.logger.Debug("sphere query",
			"seed", seed,
			"radius", radius,
			"variant", opts.variant.String(),
			"faces", len(q.result.Faces),
			"visited", q.result.Visited,
			"inside", q.result.Inside,
		)
	}
	return &q.result, nil
}

// runRing pops the next vertex from a stack, skipping vertices already
// visited, and pushes its unvisited 1-ring.
func (q *query) runRing(seed mesh.VertexID, stack []mesh.VertexID) []mesh.VertexID {
	stack = append(stack, seed)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if q.vertices.TestAndMark(uint32(v)) {
			continue
		}
		if !q.visit(v) {
			continue
		}
		for _, f := range q.store.FacesOf(v) {
			for _, w := range q.store.FaceVertices(f) {
				if !q.vertices.IsSet(uint32(w)) {
					stack = append(stack, w)
				}
			}
		}
	}
	return stack
}

// runWindow consumes an append-only slice through a read cursor. Vertices are
// marked when appended, so each enters the window once.
func (q *query) runWindow(seed mesh.VertexID, window []mesh.VertexID) []mesh.VertexID {
	window = append(window, seed)
	q.vertices.Mark(uint32(seed))
	for cur := 0; cur < len(window); cur++ {
		v := window[cur]
		if !q.visit(v) {
			continue
		}
		for _, f := range q.store.FacesOf(v) {
			for _, w := range q.store.FaceVertices(f) {
				if !q.vertices.TestAndMark(uint32(w)) {
					window = append(window, w)
				}
			}
		}
	}
	return window
}

// visit tests v against the sphere. For a vertex inside it records all
// incident faces and reports true.
func (q *query) visit(v mesh.VertexID) bool {
	q.result.Visited++
	if geom.Dist(q.store.Position(v), q.center) > q.radius {
		return false
	}
	q.result.Inside++
	if q.opts.orderToField {
		q.store.SetScalar(v, float64(q.seq))
		q.seq++
	}
	for _, f := range q.store.FacesOf(v) {
		if q.faces.TestAndMark(uint32(f)) {
			continue
		}
		if !q.opts.noCollect {
			q.result.Faces = append(q.result.Faces, f)
		}
	}
	return true
}
