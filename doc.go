// Package meshgeo answers proximity questions on triangle meshes.
//
// Two queries are provided:
//
//   - Sphere queries collect every face touched by a Euclidean ball around a
//     seed vertex, walking the surface so only connected patches are found.
//   - Geodesic marches approximate shortest surface distances from one or
//     more seeds by unfolding triangles along a priority front, optionally
//     lifting vertices along their normals by a scalar field first.
//
// # Quick Start
//
//	ctx := context.Background()
//	m, _ := mesh.New(ctx, positions, triangles)
//	eng, _ := meshgeo.New(m, meshgeo.WithLogger(meshgeo.NewTextLogger(slog.LevelInfo)))
//
//	faces, _ := eng.QuerySphere(ctx, seed, 2.5)
//	fmt.Println(len(faces.Faces))
//
//	res, _ := eng.MarchGeodesic(ctx, []geodesic.Seed{geodesic.VertexSeed(seed)}, 10, geodesic.Options{})
//	defer res.Release()
//	fmt.Println(res.Distance(other))
//
// # Scratch State
//
// Both queries need visited sets sized for the mesh. The Engine pools them;
// the sphere and geodesic packages can also be used directly with
// caller-owned bitsets, which are cleared before the query returns.
//
// # Distance Fields
//
// DistanceField returns a dense per-vertex slice that ExportField writes in a
// block-compressed format (LZ4 or Zstandard with a CRC32C trailer), readable
// with fieldio.Read.
package meshgeo
