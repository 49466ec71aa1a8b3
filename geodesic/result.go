package geodesic

import (
	"math"
	"slices"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/meshgeo/internal/arena"
	"github.com/hupe1980/meshgeo/internal/queue"
	"github.com/hupe1980/meshgeo/mesh"
)

// Entry is the best known geodesic state of a reached vertex.
type Entry struct {
	Distance float64
	// Angle is the polar angle around the seed in (-π, π].
	Angle float64
	// Origin is the index into the seed list of the seed that produced Distance.
	Origin int
}

// Settled is a vertex whose distance became final, in the order the march
// finalized it.
type Settled struct {
	Vertex   mesh.VertexID
	Distance float64
}

// StopReason tells why a march ended.
type StopReason uint8

const (
	// StopExhausted means the front ran empty without the radius limiting it.
	StopExhausted StopReason = iota
	// StopRadius means at least one edge was not expanded because of the radius.
	StopRadius
	// StopAbort means a vertex flagged mesh.FlagAbortMarching was reached.
	StopAbort
)

func (s StopReason) String() string {
	switch s {
	case StopExhausted:
		return "exhausted"
	case StopRadius:
		return "radius"
	case StopAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Stats counts the work and the recovered anomalies of one march.
type Stats struct {
	Steps       int // frontier edges popped
	Unfolds     int // triangles unfolded
	Relaxations int // existing entries improved
	Clamps      int // out-of-domain acos arguments clamped
	Fallbacks   int // straight estimates used instead of an unfolding
	Degenerate  int // zero-length edges or zero-area triangles met
	MaxFront    int // largest front size
	Reached     int // vertices with an entry
}

// entry is the slab record behind Entry.
type entry struct {
	vertex  mesh.VertexID
	dist    float64
	angle   float64
	origin  int
	settled bool
}

// frontierEdge is edge of face whose endpoints have entries a and b.
type frontierEdge struct {
	face mesh.FaceID
	edge mesh.Edge
	a, b uint32
}

// state is the per-query bookkeeping, recycled through statePool.
type state struct {
	entries *arena.Slab[entry]
	edges   *arena.Slab[frontierEdge]
	index   map[mesh.VertexID]uint32
	front   *queue.Front
}

var statePool = sync.Pool{
	New: func() any {
		return &state{
			entries: arena.NewSlab[entry](0),
			edges:   arena.NewSlab[frontierEdge](0),
			index:   make(map[mesh.VertexID]uint32),
			front:   queue.New(256),
		}
	},
}

func getState() *state {
	return statePool.Get().(*state)
}

func putState(st *state) {
	st.entries.Reset()
	st.edges.Reset()
	clear(st.index)
	st.front.Reset()
	statePool.Put(st)
}

// Result is the distance map of a march. Call Release when done; a released
// Result reports no entries.
type Result struct {
	// Order lists settled vertices in non-decreasing distance. Filled only
	// with Options.RecordOrder.
	Order []Settled
	Stats Stats
	Stop  StopReason
	// AbortVertex is the flagged vertex that stopped the march when Stop is
	// StopAbort.
	AbortVertex mesh.VertexID

	seeds []Seed
	st    *state
}

// Release returns the entry storage for reuse by later marches.
func (r *Result) Release() {
	if r.st == nil {
		return
	}
	putState(r.st)
	r.st = nil
}

// Seeds returns the seeds the march started from. Entry.Origin indexes it.
func (r *Result) Seeds() []Seed { return r.seeds }

// Len returns the number of reached vertices.
func (r *Result) Len() int {
	if r.st == nil {
		return 0
	}
	return r.st.entries.Len()
}

// Get returns the entry of v.
func (r *Result) Get(v mesh.VertexID) (Entry, bool) {
	if r.st == nil {
		return Entry{}, false
	}
	h, ok := r.st.index[v]
	if !ok {
		return Entry{}, false
	}
	e := r.st.entries.Get(h)
	return Entry{Distance: e.dist, Angle: e.angle, Origin: e.origin}, true
}

// Distance returns the distance of v, or NaN when v was not reached.
func (r *Result) Distance(v mesh.VertexID) float64 {
	e, ok := r.Get(v)
	if !ok {
		return math.NaN()
	}
	return e.Distance
}

// Each calls fn for every reached vertex in the order it was first reached,
// until fn returns false.
func (r *Result) Each(fn func(v mesh.VertexID, e Entry) bool) {
	if r.st == nil {
		return
	}
	for h := range r.st.entries.Len() {
		e := r.st.entries.Get(uint32(h))
		if !fn(e.vertex, Entry{Distance: e.dist, Angle: e.angle, Origin: e.origin}) {
			return
		}
	}
}

// Map copies the distance map.
func (r *Result) Map() map[mesh.VertexID]Entry {
	out := make(map[mesh.VertexID]Entry, r.Len())
	r.Each(func(v mesh.VertexID, e Entry) bool {
		out[v] = e
		return true
	})
	return out
}

// Reached returns the reached vertices as a roaring bitmap.
func (r *Result) Reached() *roaring.Bitmap {
	rb := roaring.New()
	r.Each(func(v mesh.VertexID, _ Entry) bool {
		rb.Add(uint32(v))
		return true
	})
	return rb
}

// GroupBySeed partitions the reached vertices by originating seed. Group i
// belongs to Seeds()[i] and is sorted by distance, ties by vertex index.
func (r *Result) GroupBySeed() [][]mesh.VertexID {
	groups := make([][]mesh.VertexID, len(r.seeds))
	r.Each(func(v mesh.VertexID, e Entry) bool {
		groups[e.Origin] = append(groups[e.Origin], v)
		return true
	})
	for _, g := range groups {
		slices.SortFunc(g, func(a, b mesh.VertexID) int {
			da, db := r.Distance(a), r.Distance(b)
			switch {
			case da < db:
				return -1
			case da > db:
				return 1
			case a < b:
				return -1
			case a > b:
				return 1
			}
			return 0
		})
	}
	return groups
}

// Field returns a dense slice of n distances indexed by vertex. Unreached
// vertices and vertices beyond n hold NaN.
func (r *Result) Field(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	r.Each(func(v mesh.VertexID, e Entry) bool {
		if int(v) < n {
			out[v] = e.Distance
		}
		return true
	})
	return out
}
