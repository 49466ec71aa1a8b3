// Package geodesic approximates on-surface distances over a triangle mesh by
// marching a front outward from one or more seeds.
//
// The front is a priority queue of frontier edges. Each step pops the edge
// whose nearer endpoint is closest to the seeds, unfolds the triangle on the
// far side of that edge into the plane of the known distances and computes
// the distance of the triangle's third vertex with the law of cosines. When
// the unfolding is not geometrically valid the straight estimate through an
// edge endpoint is used instead, so the march always terminates.
//
// # Basic Usage
//
//	res, err := geodesic.March(m, []geodesic.Seed{geodesic.VertexSeed(v)}, 5.0, geodesic.Options{})
//	if err != nil {
//		return err
//	}
//	defer res.Release()
//
//	res.Each(func(v mesh.VertexID, e geodesic.Entry) bool {
//		fmt.Println(v, e.Distance)
//		return true
//	})
//
// # Stop Criteria
//
// The radius is a soft bound: vertices beyond it may still be recorded, but an
// edge whose nearer endpoint lies beyond the radius is never expanded. A
// vertex carrying mesh.FlagAbortMarching stops the march as soon as it is
// reached. Otherwise the march ends when the front is exhausted.
//
// # Weighting
//
// With Options.WeightByScalar every vertex is displaced along its normal by
// its scalar value times Options.WeightFactor before edge lengths are
// measured. Raising the factor on a non-negative field lengthens paths across
// regions with large values.
package geodesic
